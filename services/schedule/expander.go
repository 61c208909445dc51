package schedule

import (
	"fmt"
	"time"

	"carebook/models"
)

// Expander turns a start time plus a recurrence rule into a bounded, ordered
// sequence of occurrences. It is a pure function of its inputs and safe for
// unbounded concurrent use.
type Expander struct {
	// MaxOccurrences caps every expansion, with or without an end date.
	MaxOccurrences int
}

// Expand emits one occurrence per repetition of the rule.
//
// With no rule it emits exactly [start, start+duration]. With a rule it
// steps weekly (+7d), biweekly/fortnightly (+14d) or monthly (+1 calendar
// month) until the next start would cross the rule's end date, or the cap is
// reached, whichever comes first. An unrecognized rule type fails with
// invalidRecurrenceRule; a series silently truncated to one session would be
// worse for the caller than an explicit error.
func (ex Expander) Expand(start time.Time, durationHours float64, rule *models.RecurrenceRule) ([]models.Occurrence, error) {
	duration := time.Duration(durationHours * float64(time.Hour))

	if rule == nil || rule.Type == "" {
		return []models.Occurrence{{Start: start, End: start.Add(duration)}}, nil
	}

	var step func(time.Time) time.Time
	switch rule.Type {
	case models.RecurrenceWeekly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case models.RecurrenceBiweekly, models.RecurrenceFortnightly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 14) }
	case models.RecurrenceMonthly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	default:
		return nil, &ScheduleError{
			Code:    CodeInvalidRecurrenceRule,
			Message: fmt.Sprintf("unrecognized recurrence type %q", rule.Type),
		}
	}

	// The end date is a calendar date: an occurrence starting on that day is
	// still inside the series.
	var cutoff time.Time
	if rule.EndDate != nil {
		y, m, d := rule.EndDate.Date()
		cutoff = time.Date(y, m, d, 0, 0, 0, 0, rule.EndDate.Location()).AddDate(0, 0, 1)
	}

	occurrences := make([]models.Occurrence, 0, ex.MaxOccurrences)
	current := start
	for len(occurrences) < ex.MaxOccurrences {
		if rule.EndDate != nil && !current.Before(cutoff) {
			break
		}
		occurrences = append(occurrences, models.Occurrence{Start: current, End: current.Add(duration)})
		current = step(current)
	}
	return occurrences, nil
}
