package domain

import (
	"fmt"
	"time"
)

// dateBetweenLayouts are the accepted candidate formats, tried in order.
var dateBetweenLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// DateBetweenRule validates that a candidate date falls within an inclusive
// [Start, End] window, typically an event's active period when placing slots.
// The rule is stateless and has no side effects.
type DateBetweenRule struct {
	Start time.Time
	End   time.Time
}

// NewDateBetweenRule returns a rule for the inclusive window [start, end].
func NewDateBetweenRule(start, end time.Time) DateBetweenRule {
	return DateBetweenRule{Start: start, End: end}
}

// Passes parses the candidate value and reports whether it lies within the
// window. Unparsable input fails closed: it is never coerced, and the rule
// reports false.
func (r DateBetweenRule) Passes(value string) bool {
	for _, layout := range dateBetweenLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return r.PassesTime(t)
		}
	}
	return false
}

// PassesTime reports whether t lies within the window, inclusive at both ends.
func (r DateBetweenRule) PassesTime(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Message returns the human-readable rejection message, naming the window
// bounds at minute precision.
func (r DateBetweenRule) Message() string {
	return fmt.Sprintf("This date must be between %s and %s",
		r.Start.Format("2006-01-02 15:04"), r.End.Format("2006-01-02 15:04"))
}
