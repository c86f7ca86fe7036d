package interpreter

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Intent identifies the operation a message resolved to.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentAdd
	IntentList
	IntentListByDate
	IntentDelete
	IntentSummarize
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case IntentAdd:
		return "add"
	case IntentList:
		return "list"
	case IntentListByDate:
		return "list_by_date"
	case IntentDelete:
		return "delete"
	case IntentSummarize:
		return "summarize"
	default:
		return "unknown"
	}
}

// ParsedCommand is the transient result of a single Parse call.
type ParsedCommand struct {
	Intent      Intent
	Title       string
	Date        string // YYYY-MM-DD when resolved
	Description string
}

// ErrMalformedShorthand indicates an add/create/schedule shorthand with
// fewer than the two required pipe-delimited fields.
var ErrMalformedShorthand = errors.New("malformed shorthand command")

// ErrUnresolvedDate indicates a relative date token that is neither
// "today" nor "tomorrow".
var ErrUnresolvedDate = errors.New("unresolved relative date")

const dateLayout = "2006-01-02"

var (
	summaryKeywords = []string{"summarize", "summary", "what's coming", "upcoming", "brief"}

	literalDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	// (add|create|schedule) <title> (on|for) <date> [(about|desc:|description:) <text>]
	nlAddExplicitRe = regexp.MustCompile(`(?i)^(?:add|create|schedule)\s+(.+?)\s+(?:on|for)\s+(\d{4}-\d{2}-\d{2})(?:\s+(?:about|description:|desc:)\s*(.+))?$`)

	// (add|create|schedule) <title> <relative token>
	nlAddRelativeRe = regexp.MustCompile(`(?i)^(?:add|create|schedule)\s+(.+?)\s+(today|tomorrow|tonight|yesterday|next\s+\S+)\s*$`)

	// (delete|remove|cancel) [the] [event] <title>
	nlDeleteRe = regexp.MustCompile(`(?i)^(?:delete|remove|cancel)\s+(?:the\s+)?(?:event\s+)?(.+?)\s*$`)
)

// Interpreter parses messages against a fixed-priority grammar. The zero
// value is not usable; construct with New or NewWithClock.
type Interpreter struct {
	now func() time.Time
}

// New returns an interpreter that resolves relative dates against the
// local wall clock.
func New() *Interpreter {
	return NewWithClock(time.Now)
}

// NewWithClock returns an interpreter with an injectable clock, used by
// tests to pin "today" and "tomorrow".
func NewWithClock(now func() time.Time) *Interpreter {
	return &Interpreter{now: now}
}

// Parse resolves a message to a command. Rules are tried in priority
// order and the first match wins:
//
//  1. summary keywords
//  2. list keywords, with embedded literal or relative date
//  3. add:/create:/schedule: pipe shorthand
//  4. natural-language add with explicit date
//  5. natural-language add with relative date
//  6. delete: shorthand
//  7. natural-language delete
//  8. unknown
func (p *Interpreter) Parse(message string) (ParsedCommand, error) {
	msg := strings.TrimSpace(message)
	lower := strings.ToLower(msg)

	// Rule 1: summary intent.
	for _, kw := range summaryKeywords {
		if strings.Contains(lower, kw) {
			return ParsedCommand{Intent: IntentSummarize}, nil
		}
	}

	// Rule 2: list intent, optionally narrowed to a single date.
	if strings.Contains(lower, "list") || strings.Contains(lower, "events") || strings.HasPrefix(lower, "what") {
		if date := literalDateRe.FindString(msg); date != "" {
			return ParsedCommand{Intent: IntentListByDate, Date: date}, nil
		}
		if strings.Contains(lower, "today") {
			return ParsedCommand{Intent: IntentListByDate, Date: p.resolveRelative("today")}, nil
		}
		if strings.Contains(lower, "tomorrow") {
			return ParsedCommand{Intent: IntentListByDate, Date: p.resolveRelative("tomorrow")}, nil
		}
		return ParsedCommand{Intent: IntentList}, nil
	}

	// Rule 3: add shorthand, e.g. "add:Launch|2026-05-04|Rocket day".
	for _, prefix := range []string{"add:", "create:", "schedule:"} {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		fields := strings.Split(msg[len(prefix):], "|")
		if len(fields) < 2 {
			return ParsedCommand{}, ErrMalformedShorthand
		}
		cmd := ParsedCommand{
			Intent: IntentAdd,
			Title:  strings.TrimSpace(fields[0]),
			Date:   strings.TrimSpace(fields[1]),
		}
		if len(fields) > 2 {
			cmd.Description = strings.TrimSpace(fields[2])
		}
		return cmd, nil
	}

	// Rule 4: natural-language add with an explicit date.
	if m := nlAddExplicitRe.FindStringSubmatch(msg); m != nil {
		return ParsedCommand{
			Intent:      IntentAdd,
			Title:       strings.TrimSpace(m[1]),
			Date:        m[2],
			Description: strings.TrimSpace(m[3]),
		}, nil
	}

	// Rule 5: natural-language add with a relative date token.
	if m := nlAddRelativeRe.FindStringSubmatch(msg); m != nil {
		token := strings.ToLower(m[2])
		if token != "today" && token != "tomorrow" {
			return ParsedCommand{}, ErrUnresolvedDate
		}
		return ParsedCommand{
			Intent: IntentAdd,
			Title:  strings.TrimSpace(m[1]),
			Date:   p.resolveRelative(token),
		}, nil
	}

	// Rule 6: delete shorthand, e.g. "delete:Launch".
	if strings.HasPrefix(lower, "delete:") {
		return ParsedCommand{
			Intent: IntentDelete,
			Title:  strings.TrimSpace(msg[len("delete:"):]),
		}, nil
	}

	// Rule 7: natural-language delete.
	if hasDeleteVerb(lower) {
		if m := nlDeleteRe.FindStringSubmatch(msg); m != nil {
			return ParsedCommand{
				Intent: IntentDelete,
				Title:  strings.TrimSpace(m[1]),
			}, nil
		}
	}

	// Rule 8: nothing matched.
	return ParsedCommand{Intent: IntentUnknown}, nil
}

// resolveRelative turns "today"/"tomorrow" into an absolute local date at
// evaluation time.
func (p *Interpreter) resolveRelative(token string) string {
	now := p.now()
	if token == "tomorrow" {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format(dateLayout)
}

func hasDeleteVerb(lower string) bool {
	for _, verb := range []string{"delete ", "remove ", "cancel "} {
		if strings.HasPrefix(lower, verb) {
			return true
		}
	}
	return false
}
