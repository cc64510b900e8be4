// Package recurrence decides which calendar dates a todo occurs on and
// tracks per-occurrence completion. Occurrences are never materialized: a
// todo stores only its anchor date plus the completed/excluded date sets,
// and everything else is computed against a target date.
//
// Monthly and yearly rules match by day-of-month equality with no clamping:
// a todo anchored on Jan 31 simply has no occurrence in February. That
// mirrors the shipped behavior and is pinned by tests; do not "fix" it.
package recurrence

import (
	"fmt"
	"time"

	"github.com/nwinter/lifehub/internal/model"
)

// DateLayout is the calendar-date format used for anchors and the
// completed/excluded date sets.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as its YYYY-MM-DD calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func contains(dates []string, key string) bool {
	for _, d := range dates {
		if d == key {
			return true
		}
	}
	return false
}

// VisibleOn reports whether the todo has an occurrence on the given date.
// Exclusions veto everything, including the anchor date itself.
func VisibleOn(t model.Todo, date time.Time) bool {
	key := FormatDate(date)
	if contains(t.ExcludedDates, key) {
		return false
	}

	anchor, err := ParseDate(t.Date)
	if err != nil {
		return false
	}

	if t.Recurrence == model.RecurrenceNone {
		return t.Date == key
	}

	// Recurrence only projects forward from the anchor.
	if date.Before(anchor) {
		return false
	}

	switch t.Recurrence {
	case model.RecurrenceDaily:
		return true
	case model.RecurrenceWeekly:
		return date.Weekday() == anchor.Weekday()
	case model.RecurrenceMonthly:
		return date.Day() == anchor.Day()
	case model.RecurrenceYearly:
		return date.Day() == anchor.Day() && date.Month() == anchor.Month()
	case model.RecurrenceNone:
		return t.Date == key
	}
	return false
}

// CompletedOn reports whether the occurrence on the given date is done.
// For one-off todos that is the stored flag; for recurring todos it is
// membership of the date in the completed set.
func CompletedOn(t model.Todo, date time.Time) bool {
	if t.Recurrence == model.RecurrenceNone {
		return t.Completed
	}
	return contains(t.CompletedDates, FormatDate(date))
}

// ToggleCompletion returns the todo with the occurrence on the given date
// flipped between done and not done. Events are never completable; toggling
// one returns the todo unchanged. The operation is idempotent per date and
// never touches other dates' completion state.
//
// Clients apply the toggle locally and sync the result as a wholesale PUT;
// the write path strips completion state from event rows so a stale or
// hand-crafted payload cannot mark one done.
func ToggleCompletion(t model.Todo, date time.Time) model.Todo {
	if t.IsEvent {
		return t
	}

	if t.Recurrence == model.RecurrenceNone {
		t.Completed = !t.Completed
		return t
	}

	key := FormatDate(date)
	if contains(t.CompletedDates, key) {
		kept := make([]string, 0, len(t.CompletedDates)-1)
		for _, d := range t.CompletedDates {
			if d != key {
				kept = append(kept, d)
			}
		}
		t.CompletedDates = kept
	} else {
		t.CompletedDates = append(t.CompletedDates, key)
	}
	return t
}

// ExcludeOccurrence returns the todo with the given date added to its
// excluded set ("delete this occurrence only"). Adding an already-excluded
// date is a no-op.
func ExcludeOccurrence(t model.Todo, date time.Time) model.Todo {
	key := FormatDate(date)
	if !contains(t.ExcludedDates, key) {
		t.ExcludedDates = append(t.ExcludedDates, key)
	}
	return t
}

// Occurrence is a todo projected onto a single date.
type Occurrence struct {
	model.Todo
	OccurrenceDate string `json:"occurrenceDate"`
	CompletedOnDay bool   `json:"completedOnDate"`
}

// ResolveDay filters todos down to those visible on the given date and
// stamps each with its per-date completion state.
func ResolveDay(todos []model.Todo, date time.Time) []Occurrence {
	occurrences := make([]Occurrence, 0)
	for _, t := range todos {
		if !VisibleOn(t, date) {
			continue
		}
		occurrences = append(occurrences, Occurrence{
			Todo:           t,
			OccurrenceDate: FormatDate(date),
			CompletedOnDay: CompletedOn(t, date),
		})
	}
	return occurrences
}
