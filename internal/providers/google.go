package providers

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CreateGoogleEvent inserts an event into the user's primary Google
// Calendar. Credentials come from the vault as an oauth2 token source;
// this function never triggers an interactive flow.
func CreateGoogleEvent(ctx context.Context, ts oauth2.TokenSource, in EventInput) Result {
	in = in.withDefaults()

	start, end, err := in.combined()
	if err != nil {
		return failure(Google, in, err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return failure(Google, in, fmt.Errorf("failed to create Calendar service: %w", err))
	}

	event := &calendar.Event{
		Summary:     in.Title,
		Description: in.Description,
		Start: &calendar.EventDateTime{
			DateTime: start,
			TimeZone: in.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end,
			TimeZone: in.TimeZone,
		},
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return failure(Google, in, err)
	}

	return Result{
		Provider: Google,
		Success:  true,
		EventID:  created.Id,
		Link:     created.HtmlLink,
		Title:    in.Title,
		Date:     in.Date,
	}
}
