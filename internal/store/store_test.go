package store

import (
	"errors"
	"strings"
	"testing"
)

func TestAdd_ValidDate(t *testing.T) {
	s := New()
	msg, err := s.Add("Team Meeting", "2026-01-15", "Quarterly planning")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if msg != "Event 'Team Meeting' added for 2026-01-15." {
		t.Errorf("unexpected confirmation: %q", msg)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 stored event, got %d", s.Len())
	}
	if !strings.Contains(s.List(), "2026-01-15: Team Meeting") {
		t.Errorf("List output missing added event: %q", s.List())
	}
}

func TestAdd_InvalidDates(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"wrong separators", "2026/01/15"},
		{"impossible month", "2026-13-01"},
		{"impossible day", "2026-01-45"},
		{"day out of range for month", "2026-02-30"},
		{"non-numeric", "not-a-date"},
		{"missing zero padding", "2026-1-5"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, err := s.Add("Event", tt.date, "")
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("expected ErrInvalidDate for %q, got %v", tt.date, err)
			}
			// Cardinality invariant: the store is unchanged on rejection.
			if s.Len() != 0 {
				t.Errorf("store mutated on invalid date %q", tt.date)
			}
		})
	}
}

func TestList_Empty(t *testing.T) {
	s := New()
	if got := s.List(); got != "No events scheduled." {
		t.Errorf("expected empty-store message, got %q", got)
	}
	if got := s.Summarize(); got != "No events scheduled." {
		t.Errorf("expected empty-store summary, got %q", got)
	}
}

func TestList_SortedByDate(t *testing.T) {
	s := New()
	mustAdd(t, s, "March", "2026-03-01", "")
	mustAdd(t, s, "January", "2026-01-01", "")
	mustAdd(t, s, "February", "2026-02-01", "")

	out := s.List()
	jan := strings.Index(out, "2026-01-01")
	feb := strings.Index(out, "2026-02-01")
	mar := strings.Index(out, "2026-03-01")
	if jan < 0 || feb < 0 || mar < 0 {
		t.Fatalf("missing dates in output: %q", out)
	}
	if !(jan < feb && feb < mar) {
		t.Errorf("events not sorted ascending by date: %q", out)
	}
}

func TestList_StableForEqualDates(t *testing.T) {
	s := New()
	mustAdd(t, s, "First", "2026-05-01", "")
	mustAdd(t, s, "Second", "2026-05-01", "")

	out := s.List()
	if strings.Index(out, "First") > strings.Index(out, "Second") {
		t.Errorf("insertion order not preserved for equal dates: %q", out)
	}
}

func TestList_DescriptionSuffix(t *testing.T) {
	s := New()
	mustAdd(t, s, "Launch", "2026-05-04", "Rocket day")
	mustAdd(t, s, "Standup", "2026-05-05", "")

	out := s.List()
	if !strings.Contains(out, "- 2026-05-04: Launch - Rocket day") {
		t.Errorf("description suffix missing: %q", out)
	}
	if !strings.Contains(out, "- 2026-05-05: Standup\n") {
		t.Errorf("empty description should have no suffix: %q", out)
	}
}

func TestSummarize_Format(t *testing.T) {
	s := New()
	mustAdd(t, s, "Launch", "2026-05-04", "Rocket day")

	out := s.Summarize()
	if !strings.HasPrefix(out, "Upcoming Events Summary:") {
		t.Errorf("unexpected summary header: %q", out)
	}
	if !strings.Contains(out, "- 2026-05-04: Launch (Rocket day)") {
		t.Errorf("summary should parenthesize the description: %q", out)
	}
}

func TestListByDate(t *testing.T) {
	s := New()
	mustAdd(t, s, "Review", "2026-06-01", "")
	mustAdd(t, s, "Standup", "2026-06-02", "")

	out := s.ListByDate("2026-06-01")
	if !strings.Contains(out, "Review") {
		t.Errorf("expected matching event in output: %q", out)
	}
	if strings.Contains(out, "Standup") {
		t.Errorf("non-matching event leaked into output: %q", out)
	}

	if got := s.ListByDate("2026-12-31"); got != "No events found for 2026-12-31." {
		t.Errorf("unexpected no-match message: %q", got)
	}
}

func TestDelete_CaseInsensitiveRemovesAll(t *testing.T) {
	s := New()
	mustAdd(t, s, "Team Meeting", "2026-01-15", "")
	mustAdd(t, s, "team meeting", "2026-02-15", "")
	mustAdd(t, s, "Other", "2026-03-15", "")

	msg, found := s.Delete("TEAM MEETING")
	if !found {
		t.Fatal("expected deletion to report found")
	}
	if msg != "Event 'TEAM MEETING' deleted." {
		t.Errorf("unexpected delete message: %q", msg)
	}
	if s.Len() != 1 {
		t.Errorf("expected all case-insensitive matches removed, %d events remain", s.Len())
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := New()
	mustAdd(t, s, "Standup", "2026-01-15", "")

	if _, found := s.Delete("Standup"); !found {
		t.Fatal("first delete should find the event")
	}
	msg, found := s.Delete("Standup")
	if found {
		t.Error("second delete should not find anything")
	}
	if msg != "No event found with title 'Standup'." {
		t.Errorf("unexpected not-found message: %q", msg)
	}
}

func TestEvents_Snapshot(t *testing.T) {
	s := New()
	mustAdd(t, s, "Standup", "2026-01-15", "")

	snap := s.Events()
	snap[0].Title = "mutated"
	if s.Events()[0].Title != "Standup" {
		t.Error("Events() must return a copy, not the underlying slice")
	}
}

func mustAdd(t *testing.T, s *Store, title, date, desc string) {
	t.Helper()
	if _, err := s.Add(title, date, desc); err != nil {
		t.Fatalf("Add(%q, %q) failed: %v", title, date, err)
	}
}
