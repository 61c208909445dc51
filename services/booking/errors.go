package booking

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to callers.
const (
	CodeProposalNotUsable      = "proposalNotUsable"
	CodeNoOccurrences          = "noOccurrences"
	CodeAssemblyPartialFailure = "assemblyPartialFailure"
)

type AssemblyError struct {
	Code    string
	Message string
	// Occurrence counts, set for assemblyPartialFailure.
	Succeeded int
	Failed    int
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &AssemblyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether err is an AssemblyError carrying the given code.
func HasCode(err error, code string) bool {
	var ae *AssemblyError
	return errors.As(err, &ae) && ae.Code == code
}
