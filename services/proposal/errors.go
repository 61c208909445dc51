package proposal

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to callers.
const (
	CodeRateBelowMinimum         = "rateBelowMinimum"
	CodeProposalNotFound         = "proposalNotFound"
	CodeProposalTransitionDenied = "proposalTransitionDenied"
)

type ProposalError struct {
	Code    string
	Message string
}

func (e *ProposalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &ProposalError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether err is a ProposalError carrying the given code.
func HasCode(err error, code string) bool {
	var pe *ProposalError
	return errors.As(err, &pe) && pe.Code == code
}
