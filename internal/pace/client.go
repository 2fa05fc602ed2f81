package pace

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tasksync/tasksync/internal/clock"
	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the 7pace Timetracker API for a single organization.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	pat        string
	clock      clock.Clock
}

// NewClient creates a Client authenticating with the given personal access
// token. Returns ErrMissingPAT when the token is empty.
func NewClient(organization, pat string) (*Client, error) {
	if pat == "" {
		return nil, errors.ErrMissingPAT
	}
	return &Client{
		httpClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		baseURL:    fmt.Sprintf("https://api.timehub.7pace.com/%s", organization),
		pat:        pat,
		clock:      clock.RealClock{},
	}, nil
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

// WithClock replaces the clock used for worklog timestamps. Used by tests.
func (c *Client) WithClock(clk clock.Clock) *Client {
	c.clock = clk
	return c
}

func (c *Client) authHeader() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(":" + c.pat))
	return "Basic " + encoded
}

// do executes an authenticated request and decodes a successful JSON body
// into out. A literal null body leaves out untouched.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	zerolog.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", url).
		Msg("timer request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "timer request failed")
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Wrapf(errors.ErrAPIStatus, "status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read timer response")
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode timer response")
	}
	return nil
}

// StartTimer starts tracking against the given work item.
func (c *Client) StartTimer(ctx context.Context, workItemID int, comment string) (*Timer, error) {
	url := c.baseURL + "/_apis/api/tracking/client/startTracking"

	var timer Timer
	err := c.do(ctx, http.MethodPost, url, StartTimerRequest{
		WorkItemID: workItemID,
		Comment:    comment,
	}, &timer)
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

// StopTimer stops the active tracking session with the given reason code.
func (c *Client) StopTimer(ctx context.Context, reason int) (*StopTimerResponse, error) {
	url := fmt.Sprintf("%s/_apis/api/tracking/client/stopTracking/%d", c.baseURL, reason)

	var stopped StopTimerResponse
	if err := c.do(ctx, http.MethodPost, url, nil, &stopped); err != nil {
		return nil, err
	}
	return &stopped, nil
}

// CurrentTimer returns the active tracking session, or nil when no timer is
// running. The API signals "no timer" with a null body.
func (c *Client) CurrentTimer(ctx context.Context) (*Timer, error) {
	url := c.baseURL + "/_apis/api/tracking/client/current"

	var timer Timer
	if err := c.do(ctx, http.MethodGet, url, nil, &timer); err != nil {
		return nil, err
	}
	if timer.ID == "" {
		return nil, nil
	}
	return &timer, nil
}

// CreateWorklog records a manual time entry of the given duration.
func (c *Client) CreateWorklog(ctx context.Context, workItemID int, duration time.Duration, comment string) (*Worklog, error) {
	url := c.baseURL + "/_apis/worklogs"

	var worklog Worklog
	err := c.do(ctx, http.MethodPost, url, CreateWorklogRequest{
		WorkItemID: workItemID,
		Duration:   int(duration.Seconds()),
		Timestamp:  c.clock.Now().UTC(),
		Comment:    comment,
	}, &worklog)
	if err != nil {
		return nil, err
	}
	return &worklog, nil
}

// ListWorklogs fetches worklogs in the half-open range [start, end).
func (c *Client) ListWorklogs(ctx context.Context, start, end time.Time) ([]Worklog, error) {
	q := url.Values{}
	q.Set("startDate", start.UTC().Format(time.RFC3339))
	q.Set("endDate", end.UTC().Format(time.RFC3339))
	reqURL := c.baseURL + "/_apis/worklogs?" + q.Encode()

	var worklogs []Worklog
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &worklogs); err != nil {
		return nil, err
	}
	return worklogs, nil
}
