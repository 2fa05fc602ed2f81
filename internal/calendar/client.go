package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// defaultBaseURL is the Graph endpoint for the signed-in user's calendar.
const defaultBaseURL = "https://graph.microsoft.com/v1.0/me"

// TokenProvider supplies a bearer token for Graph requests. Implementations
// handle caching and refresh.
type TokenProvider func(ctx context.Context) (string, error)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Microsoft Graph calendar API.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	token      TokenProvider
}

// NewClient creates a calendar client with the given token provider.
func NewClient(token TokenProvider) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc HTTPClient) *Client {
	c.httpClient = hc
	return c
}

// do executes an authenticated request and decodes a successful JSON body
// into out.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to acquire calendar token")
	}

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return errors.Wrap(marshalErr, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	zerolog.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", url).
		Msg("calendar request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "calendar request failed")
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Wrapf(errors.ErrAPIStatus, "status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode calendar response")
	}
	return nil
}

// ListEvents fetches events overlapping [start, end) from the calendar view.
func (c *Client) ListEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("startDateTime", start.UTC().Format(time.RFC3339))
	q.Set("endDateTime", end.UTC().Format(time.RFC3339))
	reqURL := c.baseURL + "/calendarView?" + q.Encode()

	var resp eventsResponse
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// CreateEvent creates the event and returns the stored copy, including its
// assigned ID.
func (c *Client) CreateEvent(ctx context.Context, event Event) (*Event, error) {
	var created Event
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/events", event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEvent removes the event by ID. Deleting an already-deleted event
// returns ErrAPIStatus with a 404.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/events/"+url.PathEscape(eventID), nil, nil)
}

// NewFocusBlockEvent builds a focus block event for a work item, tagged with
// the item ID so the block can be located later.
func NewFocusBlockEvent(workItemID int, title string, start, end time.Time, zone *time.Location) Event {
	return Event{
		Subject:    title,
		Start:      NewDateTimeZone(start, zone),
		End:        NewDateTimeZone(end, zone),
		Categories: []string{"Focus"},
		ExtendedProperties: []ExtendedProperty{
			{ID: workItemIDProperty, Value: strconv.Itoa(workItemID)},
		},
	}
}
