package schedule

import (
	"errors"
	"fmt"
)

// CodeInvalidRecurrenceRule marks an unrecognized recurrence type.
const CodeInvalidRecurrenceRule = "invalidRecurrenceRule"

type ScheduleError struct {
	Code    string
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HasCode reports whether err is a ScheduleError carrying the given code.
func HasCode(err error, code string) bool {
	var se *ScheduleError
	return errors.As(err, &se) && se.Code == code
}
