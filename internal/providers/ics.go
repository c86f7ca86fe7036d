package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// DefaultExportDir is where .ics files land unless overridden via the
// CALENDAR_EXPORT_DIR environment variable or the --export-dir flag.
const DefaultExportDir = "/tmp/calendar_events"

// Exporter writes events as RFC 5545 .ics files, the fallback for
// providers we cannot reach remotely.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir. An empty dir selects
// CALENDAR_EXPORT_DIR, then DefaultExportDir.
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = os.Getenv("CALENDAR_EXPORT_DIR")
	}
	if dir == "" {
		dir = DefaultExportDir
	}
	return &Exporter{dir: dir}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export serializes the event to a new .ics file. A UUID is embedded in
// both the iCalendar UID and the filename, so repeated exports of the
// same title/date never overwrite each other.
func (e *Exporter) Export(in EventInput) Result {
	in = in.withDefaults()

	day, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return failure(LocalExport, in, fmt.Errorf("%w: %q", ErrInvalidDate, in.Date))
	}
	startClock, err := time.Parse(timeLayout, in.StartTime)
	if err != nil {
		return failure(LocalExport, in, fmt.Errorf("%w: %q", ErrInvalidTime, in.StartTime))
	}
	endClock, err := time.Parse(timeLayout, in.EndTime)
	if err != nil {
		return failure(LocalExport, in, fmt.Errorf("%w: %q", ErrInvalidTime, in.EndTime))
	}
	start := day.Add(clockOffset(startClock))
	end := day.Add(clockOffset(endClock))

	token := uuid.NewString()
	uid := fmt.Sprintf("%s-%s-%s@calendar-mcp", in.Date, strings.ReplaceAll(in.Title, " ", "-"), token)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//calendar-mcp//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, uid)
	vevent.Props.SetText(ical.PropSummary, in.Title)
	if in.Description != "" {
		vevent.Props.SetText(ical.PropDescription, in.Description)
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStart, start)
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, end)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	cal.Children = append(cal.Children, vevent.Component)

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return failure(LocalExport, in, fmt.Errorf("failed to create export directory: %w", err))
	}

	filename := fmt.Sprintf("%s_%s_%s.ics", in.Date, sanitizeTitle(in.Title), token[:8])
	path := filepath.Join(e.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return failure(LocalExport, in, fmt.Errorf("failed to create file: %w", err))
	}
	defer f.Close()

	if err := ical.NewEncoder(f).Encode(cal); err != nil {
		return failure(LocalExport, in, fmt.Errorf("failed to encode calendar: %w", err))
	}

	return Result{
		Provider: LocalExport,
		Success:  true,
		EventID:  uid,
		Title:    in.Title,
		Date:     in.Date,
		FilePath: path,
		Filename: filename,
	}
}

// clockOffset converts a parsed HH:MM value into an offset from midnight.
func clockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// sanitizeTitle replaces everything except letters, digits, spaces,
// hyphens and underscores so the title is safe in a filename.
func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, title)
}
