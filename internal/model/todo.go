package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Recurrence is the repeat rule attached to a todo. The zero value is
// RecurrenceNone (a one-off task anchored to its date).
type Recurrence int

const (
	RecurrenceNone Recurrence = iota
	RecurrenceDaily
	RecurrenceWeekly
	RecurrenceMonthly
	RecurrenceYearly
)

var recurrenceNames = map[Recurrence]string{
	RecurrenceNone:    "none",
	RecurrenceDaily:   "daily",
	RecurrenceWeekly:  "weekly",
	RecurrenceMonthly: "monthly",
	RecurrenceYearly:  "yearly",
}

var recurrenceFromName = map[string]Recurrence{
	"none":    RecurrenceNone,
	"daily":   RecurrenceDaily,
	"weekly":  RecurrenceWeekly,
	"monthly": RecurrenceMonthly,
	"yearly":  RecurrenceYearly,
}

// ParseRecurrence maps a wire string to a Recurrence.
func ParseRecurrence(s string) (Recurrence, error) {
	r, ok := recurrenceFromName[s]
	if !ok {
		return RecurrenceNone, fmt.Errorf("unknown recurrence: %q", s)
	}
	return r, nil
}

func (r Recurrence) String() string {
	return recurrenceNames[r]
}

func (r Recurrence) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Recurrence) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRecurrence(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Priority is the urgency bucket of a todo.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

var priorityFromName = map[string]Priority{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

func ParsePriority(s string) (Priority, error) {
	p, ok := priorityFromName[s]
	if !ok {
		return PriorityLow, fmt.Errorf("unknown priority: %q", s)
	}
	return p, nil
}

func (p Priority) String() string {
	return priorityNames[p]
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Todo is a reminder or event anchored to a calendar date. Completed holds
// the done state for one-off todos only; recurring todos track completion
// per occurrence date in CompletedDates. ExcludedDates lists occurrence dates
// the user deleted individually. All date entries are YYYY-MM-DD strings.
type Todo struct {
	ID             string     `json:"id"`
	UserID         string     `json:"-"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Completed      bool       `json:"completed"`
	Date           string     `json:"date"`
	Time           *string    `json:"time"`
	Priority       Priority   `json:"priority"`
	Recurrence     Recurrence `json:"recurrence"`
	CompletedDates []string   `json:"completedDates"`
	ExcludedDates  []string   `json:"excludedDates"`
	IsEvent        bool       `json:"isEvent"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
