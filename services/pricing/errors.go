package pricing

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to callers. Hosts map these to user-facing
// messages; the core only guarantees the code and a descriptive message.
const (
	CodeRateBelowMinimum    = "rateBelowMinimum"
	CodeInvalidRate         = "invalidRate"
	CodeInvalidQuantity     = "invalidQuantity"
	CodeUnknownPricingPhase = "unknownPricingPhase"
)

type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &PricingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HasCode reports whether err is a PricingError carrying the given code.
func HasCode(err error, code string) bool {
	var pe *PricingError
	return errors.As(err, &pe) && pe.Code == code
}
