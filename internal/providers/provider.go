package providers

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider is the closed set of supported calendar backends. Adding a
// backend means extending this enum and the dispatch in CreateEvent,
// which the compiler checks, rather than chasing string comparisons.
type Provider int

const (
	Google Provider = iota
	Microsoft
	LocalExport
)

// String returns the wire name of the provider.
func (p Provider) String() string {
	switch p {
	case Google:
		return "google"
	case Microsoft:
		return "microsoft"
	case LocalExport:
		return "ics"
	default:
		return "unknown"
	}
}

// ErrUnsupportedProvider indicates a provider name outside the closed set.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ErrInvalidDate indicates an event date that does not parse as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid event date")

// ErrInvalidTime indicates a start or end time that does not parse as HH:MM.
var ErrInvalidTime = errors.New("invalid event time")

// ParseProvider maps a provider name onto the Provider enum.
// Accepts "ics" and "local" for the file-export fallback.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google":
		return Google, nil
	case "microsoft", "outlook":
		return Microsoft, nil
	case "ics", "local":
		return LocalExport, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// DefaultStartTime and DefaultEndTime apply when the caller omits times.
	DefaultStartTime = "09:00"
	DefaultEndTime   = "10:00"

	// DefaultTimeZone is passed through to the backend as metadata; no
	// timezone arithmetic is performed anywhere in this package.
	DefaultTimeZone = "UTC"
)

// EventInput describes an event to create on any backend.
type EventInput struct {
	Title       string
	Date        string // YYYY-MM-DD
	Description string
	StartTime   string // HH:MM, default 09:00
	EndTime     string // HH:MM, default 10:00
	TimeZone    string // IANA or backend-specific identifier, default UTC
}

// withDefaults fills in the default times and timezone.
func (in EventInput) withDefaults() EventInput {
	if in.StartTime == "" {
		in.StartTime = DefaultStartTime
	}
	if in.EndTime == "" {
		in.EndTime = DefaultEndTime
	}
	if in.TimeZone == "" {
		in.TimeZone = DefaultTimeZone
	}
	return in
}

// combined validates the date and times and returns the DATE+"T"+TIME+":00"
// datetime strings the remote APIs expect.
func (in EventInput) combined() (start, end string, err error) {
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	if _, err := time.Parse(timeLayout, in.StartTime); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTime, in.StartTime)
	}
	if _, err := time.Parse(timeLayout, in.EndTime); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTime, in.EndTime)
	}
	return in.Date + "T" + in.StartTime + ":00", in.Date + "T" + in.EndTime + ":00", nil
}

// Result is the uniform outcome shape returned by every backend.
type Result struct {
	Provider Provider
	Success  bool
	EventID  string
	Link     string
	Title    string
	Date     string

	// File export fields (LocalExport only)
	FilePath string
	Filename string

	// Err carries the failure reason when Success is false.
	Err string
}

// Message renders the result as user-facing text.
func (r Result) Message() string {
	if !r.Success {
		return fmt.Sprintf("Failed to create event via %s: %s", r.Provider, r.Err)
	}
	switch r.Provider {
	case LocalExport:
		return fmt.Sprintf("ICS file created: %s", r.FilePath)
	default:
		msg := fmt.Sprintf("Event '%s' created on %s via %s.", r.Title, r.Date, r.Provider)
		if r.Link != "" {
			msg += " Link: " + r.Link
		}
		return msg
	}
}

// failure builds a failed Result from an error.
func failure(p Provider, in EventInput, err error) Result {
	return Result{
		Provider: p,
		Success:  false,
		Title:    in.Title,
		Date:     in.Date,
		Err:      err.Error(),
	}
}
