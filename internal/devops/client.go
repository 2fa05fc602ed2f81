package devops

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// apiVersion is the work item tracking API version this client speaks.
const apiVersion = "7.0"

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Azure DevOps work item tracking REST API for a single
// organization and project.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	project    string
	pat        string
}

// NewClient creates a Client for the given organization and project,
// authenticating with the personal access token.
//
// Returns ErrMissingPAT when the token is empty, so commands that need the
// tracker fail before any request is made.
func NewClient(organization, project, pat string) (*Client, error) {
	if pat == "" {
		return nil, errors.ErrMissingPAT
	}
	return &Client{
		httpClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		baseURL:    fmt.Sprintf("https://dev.azure.com/%s", organization),
		project:    project,
		pat:        pat,
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

// authHeader builds the Basic auth header value. The tracker expects the PAT
// as the password with an empty username.
func (c *Client) authHeader() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(":" + c.pat))
	return "Basic " + encoded
}

// newRequest builds an authenticated request with a correlation ID header.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// do executes the request and decodes a successful JSON response into out.
// Non-2xx statuses map to ErrWorkItemNotFound for 404 and ErrAPIStatus
// otherwise.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("tracker request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "tracker request failed")
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(errors.ErrWorkItemNotFound, "%s", req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Wrapf(errors.ErrAPIStatus, "status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode tracker response")
	}
	return nil
}

// GetWorkItem fetches a single work item by ID, including its relations.
func (c *Client) GetWorkItem(ctx context.Context, id int) (*WorkItem, error) {
	url := fmt.Sprintf("%s/%s/_apis/wit/workitems/%d?$expand=relations&api-version=%s",
		c.baseURL, c.project, id, apiVersion)

	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var item WorkItem
	if err := c.do(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// QueryWorkItems runs a WIQL query and returns the matching references.
func (c *Client) QueryWorkItems(ctx context.Context, wiql string) (*WiqlResult, error) {
	url := fmt.Sprintf("%s/%s/_apis/wit/wiql?api-version=%s", c.baseURL, c.project, apiVersion)

	payload, err := json.Marshal(map[string]string{"query": wiql})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode WIQL query")
	}

	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result WiqlResult
	if err := c.do(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PatchOp is a single JSON-Patch operation against a work item.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// FieldPatch builds a replace operation for the named field.
func FieldPatch(field string, value any) PatchOp {
	return PatchOp{Op: "replace", Path: "/fields/" + field, Value: value}
}

// UpdateWorkItem applies the given patch operations unconditionally and
// returns the updated item. The last writer wins; use UpdateWorkItemWithRev
// to detect concurrent edits.
func (c *Client) UpdateWorkItem(ctx context.Context, id int, ops []PatchOp) (*WorkItem, error) {
	url := fmt.Sprintf("%s/%s/_apis/wit/workitems/%d?api-version=%s",
		c.baseURL, c.project, id, apiVersion)

	payload, err := json.Marshal(ops)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode patch document")
	}

	req, err := c.newRequest(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json-patch+json")

	var item WorkItem
	if err := c.do(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateWorkItemWithRev applies the patch only if the item's current revision
// still equals expectedRev. It re-fetches the item immediately before
// patching; when the revision moved, it returns a RevisionConflictError and
// never sends the patch.
//
// The check and the patch are not atomic on the server, so a write landing
// between them still wins. The guard narrows the race to that window instead
// of eliminating it.
func (c *Client) UpdateWorkItemWithRev(ctx context.Context, id, expectedRev int, ops []PatchOp) (*WorkItem, error) {
	current, err := c.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Rev != expectedRev {
		zerolog.Ctx(ctx).Warn().
			Int("work_item_id", id).
			Int("expected_rev", expectedRev).
			Int("actual_rev", current.Rev).
			Msg("revision moved, refusing update")
		return nil, &errors.RevisionConflictError{
			ID:       id,
			Expected: expectedRev,
			Actual:   current.Rev,
		}
	}

	return c.UpdateWorkItem(ctx, id, ops)
}
