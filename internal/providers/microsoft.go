package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// graphEventsURL is the Microsoft Graph endpoint for the signed-in
// user's calendar.
const graphEventsURL = "https://graph.microsoft.com/v1.0/me/events"

// graphDateTime mirrors the Graph API dateTimeTimeZone shape.
type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// graphEventRequest is the outgoing event payload.
type graphEventRequest struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Start graphDateTime `json:"start"`
	End   graphDateTime `json:"end"`
}

// graphEventResponse is the subset of the created-event response we use.
type graphEventResponse struct {
	ID      string `json:"id"`
	WebLink string `json:"webLink"`
}

// CreateMicrosoftEvent creates an event in the user's Outlook calendar
// via Microsoft Graph. The access token comes from the vault; httpClient
// may be nil, in which case http.DefaultClient is used (tests inject a
// client pointed at a stub server via baseURL).
func CreateMicrosoftEvent(ctx context.Context, httpClient *http.Client, accessToken string, in EventInput) Result {
	return createMicrosoftEvent(ctx, httpClient, accessToken, graphEventsURL, in)
}

func createMicrosoftEvent(ctx context.Context, httpClient *http.Client, accessToken, url string, in EventInput) Result {
	in = in.withDefaults()

	start, end, err := in.combined()
	if err != nil {
		return failure(Microsoft, in, err)
	}

	payload := graphEventRequest{
		Subject: in.Title,
		Start:   graphDateTime{DateTime: start, TimeZone: in.TimeZone},
		End:     graphDateTime{DateTime: end, TimeZone: in.TimeZone},
	}
	payload.Body.ContentType = "Text"
	payload.Body.Content = in.Description

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(Microsoft, in, fmt.Errorf("failed to encode event: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(Microsoft, in, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return failure(Microsoft, in, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return failure(Microsoft, in, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody)))
	}

	var created graphEventResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return failure(Microsoft, in, fmt.Errorf("malformed response: %w", err))
	}

	return Result{
		Provider: Microsoft,
		Success:  true,
		EventID:  created.ID,
		Link:     created.WebLink,
		Title:    in.Title,
		Date:     in.Date,
	}
}
