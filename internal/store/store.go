package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date layout accepted by the store.
const DateLayout = "2006-01-02"

// ErrInvalidDate indicates a date that does not parse as YYYY-MM-DD,
// including calendar-impossible dates such as month 13 or day 45.
var ErrInvalidDate = errors.New("invalid date format")

// InvalidDateMessage is the user-facing message for rejected dates.
const InvalidDateMessage = "Invalid date format. Use YYYY-MM-DD."

// Event is a stored calendar event. There is no identifier beyond the
// (title, date) pair; deletion matches on title alone.
type Event struct {
	Title       string
	Date        string // YYYY-MM-DD
	Description string
}

// Store holds events in insertion order.
type Store struct {
	events []Event
}

// New creates an empty event store.
func New() *Store {
	return &Store{}
}

// Add validates the date and appends a new event.
// Invalid dates are rejected before insertion and never stored.
func (s *Store) Add(title, date, description string) (string, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	s.events = append(s.events, Event{
		Title:       title,
		Date:        date,
		Description: description,
	})

	return fmt.Sprintf("Event '%s' added for %s.", title, date), nil
}

// List returns all events sorted ascending by date, one line each.
// Insertion order is preserved for events on the same date.
func (s *Store) List() string {
	if len(s.events) == 0 {
		return "No events scheduled."
	}

	var sb strings.Builder
	sb.WriteString("Calendar Events:\n")
	for _, e := range s.sortedByDate() {
		sb.WriteString(fmt.Sprintf("- %s: %s", e.Date, e.Title))
		if e.Description != "" {
			sb.WriteString(" - " + e.Description)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ListByDate returns the events matching the given date exactly.
func (s *Store) ListByDate(date string) string {
	var sb strings.Builder
	found := false
	for _, e := range s.sortedByDate() {
		if e.Date != date {
			continue
		}
		if !found {
			sb.WriteString(fmt.Sprintf("Events on %s:\n", date))
			found = true
		}
		sb.WriteString(fmt.Sprintf("- %s: %s", e.Date, e.Title))
		if e.Description != "" {
			sb.WriteString(" - " + e.Description)
		}
		sb.WriteString("\n")
	}

	if !found {
		return fmt.Sprintf("No events found for %s.", date)
	}
	return sb.String()
}

// Delete removes all events whose title matches case-insensitively.
// The boolean reports whether anything was removed.
func (s *Store) Delete(title string) (string, bool) {
	kept := s.events[:0]
	for _, e := range s.events {
		if !strings.EqualFold(e.Title, title) {
			kept = append(kept, e)
		}
	}

	removed := len(kept) < len(s.events)
	s.events = kept

	if removed {
		return fmt.Sprintf("Event '%s' deleted.", title), true
	}
	return fmt.Sprintf("No event found with title '%s'.", title), false
}

// Summarize returns a compact summary of all events in date order.
func (s *Store) Summarize() string {
	if len(s.events) == 0 {
		return "No events scheduled."
	}

	var sb strings.Builder
	sb.WriteString("Upcoming Events Summary:\n")
	for _, e := range s.sortedByDate() {
		sb.WriteString(fmt.Sprintf("- %s: %s", e.Date, e.Title))
		if e.Description != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", e.Description))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// Events returns a snapshot copy of the stored events in insertion order.
func (s *Store) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// sortedByDate returns a copy sorted ascending by date. ISO dates sort
// lexically, and the stable sort keeps insertion order for equal dates.
func (s *Store) sortedByDate() []Event {
	sorted := make([]Event, len(s.events))
	copy(sorted, s.events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
