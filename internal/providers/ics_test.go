package providers

import (
	"os"
	"strings"
	"testing"
)

func TestExport_WritesFile(t *testing.T) {
	e := NewExporter(t.TempDir())

	res := e.Export(EventInput{
		Title:       "Launch Party",
		Date:        "2026-05-04",
		Description: "Rocket day",
	})
	if !res.Success {
		t.Fatalf("export failed: %s", res.Err)
	}

	data, err := os.ReadFile(res.FilePath)
	if err != nil {
		t.Fatalf("exported file unreadable: %v", err)
	}
	content := string(data)

	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "SUMMARY:Launch Party", "DESCRIPTION:Rocket day", "UID:2026-05-04-Launch-Party-"} {
		if !strings.Contains(content, want) {
			t.Errorf("exported file missing %q:\n%s", want, content)
		}
	}
	if !strings.HasSuffix(res.Filename, ".ics") {
		t.Errorf("unexpected filename: %q", res.Filename)
	}
	if !strings.HasPrefix(res.Filename, "2026-05-04_Launch Party_") {
		t.Errorf("filename should embed date and sanitized title: %q", res.Filename)
	}
}

func TestExport_NoSilentOverwrite(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)

	in := EventInput{Title: "Standup", Date: "2026-01-15"}
	first := e.Export(in)
	second := e.Export(in)

	if !first.Success || !second.Success {
		t.Fatalf("exports failed: %s / %s", first.Err, second.Err)
	}
	if first.FilePath == second.FilePath {
		t.Errorf("repeated export overwrote the same file: %s", first.FilePath)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 distinct files, found %d", len(entries))
	}
}

func TestExport_SanitizesTitle(t *testing.T) {
	e := NewExporter(t.TempDir())

	res := e.Export(EventInput{Title: "Q1/Q2 review: 50% done!", Date: "2026-03-01"})
	if !res.Success {
		t.Fatalf("export failed: %s", res.Err)
	}
	if strings.ContainsAny(res.Filename, "/:%!") {
		t.Errorf("filename not sanitized: %q", res.Filename)
	}
}

func TestExport_InvalidInput(t *testing.T) {
	e := NewExporter(t.TempDir())

	tests := []struct {
		name    string
		in      EventInput
		wantErr string
	}{
		{"impossible date", EventInput{Title: "Bad", Date: "2026-13-45"}, ErrInvalidDate.Error()},
		{"bad start time", EventInput{Title: "Bad", Date: "2026-01-15", StartTime: "9am"}, ErrInvalidTime.Error()},
		{"impossible end time", EventInput{Title: "Bad", Date: "2026-01-15", EndTime: "25:61"}, ErrInvalidTime.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Export(tt.in)
			if res.Success {
				t.Fatal("expected failure")
			}
			// A bad time on a valid date must not be misreported as a
			// date problem, and vice versa.
			if !strings.Contains(res.Err, tt.wantErr) {
				t.Errorf("expected error %q, got %q", tt.wantErr, res.Err)
			}
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Team Meeting", "Team Meeting"},
		{"a/b\\c", "a_b_c"},
		{"keep-this_one", "keep-this_one"},
		{"émigré", "_migr_"},
	}
	for _, tt := range tests {
		if got := sanitizeTitle(tt.in); got != tt.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
