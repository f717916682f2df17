// Package servicenow provides HTTP access to the ServiceNow table API.
// Only the three lookups the reconciler needs are implemented: request
// item by number, label entries by ticket, and user by sys_id. Calls are
// single-shot GETs with basic auth; there is no retry or pagination.
package servicenow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound reports a 2xx response whose result list was empty.
var ErrNotFound = errors.New("no matching record")

// StatusError is a non-2xx response from the table API. The batch
// orchestrator relies on distinguishing authentication failures from
// other fetch errors.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("servicenow API returned %d: %s", e.StatusCode, e.Body)
}

// IsAuth reports whether the response indicates bad or missing credentials.
func (e *StatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Credentials are passed through on every call, basic-auth semantics.
// They are never stored beyond the lifetime of a Client.
type Credentials struct {
	Username string
	Password string
}

// Client provides HTTP access to one ServiceNow instance.
type Client struct {
	// BaseURL is https://<instance>; tests point it at an httptest server.
	BaseURL    string
	Creds      Credentials
	HTTPClient *http.Client

	log *zap.Logger
}

// NewClient creates a client for the given instance host.
func NewClient(instance string, creds Credentials, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: "https://" + strings.TrimSuffix(instance, "/"),
		Creds:   creds,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRequestItemByNumber looks up the catalog request item for a ticket
// number. Returns ErrNotFound when the result list is empty.
func (c *Client) GetRequestItemByNumber(ctx context.Context, number string) (*RequestItem, error) {
	body, err := c.doGet(ctx, "/api/now/table/sc_req_item", "number="+number)
	if err != nil {
		return nil, fmt.Errorf("fetch ticket %s: %w", number, err)
	}

	var env requestItemEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse ticket response: %w", err)
	}
	if len(env.Result) == 0 {
		return nil, fmt.Errorf("ticket %s: %w", number, ErrNotFound)
	}
	return &env.Result[0], nil
}

// GetLabelEntries returns the label entries attached to a ticket. An empty
// list is a normal outcome, not an error.
func (c *Client) GetLabelEntries(ctx context.Context, number string) ([]LabelEntry, error) {
	body, err := c.doGet(ctx, "/api/now/table/label_entry", "id_display="+number)
	if err != nil {
		return nil, fmt.Errorf("fetch labels for %s: %w", number, err)
	}

	var env labelEntryEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse label response: %w", err)
	}
	return env.Result, nil
}

// GetUserBySysID resolves a sys_user sys_id to its record. Returns
// ErrNotFound when no user matches.
func (c *Client) GetUserBySysID(ctx context.Context, sysID string) (*UserRecord, error) {
	body, err := c.doGet(ctx, "/api/now/table/sys_user", "sys_id="+sysID)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", sysID, err)
	}

	var env userEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse user response: %w", err)
	}
	if len(env.Result) == 0 {
		return nil, fmt.Errorf("user %s: %w", sysID, ErrNotFound)
	}
	return &env.Result[0], nil
}

// TicketURL builds the deep link into the ticketing UI for a request item.
func (c *Client) TicketURL(sysID string) string {
	return fmt.Sprintf("%s/nav_to.do?uri=sc_req_item.do?sys_id=%s", c.BaseURL, sysID)
}

// doGet executes an authenticated GET against a table API path with a
// sysparm_query and returns the response body. Non-2xx responses become a
// *StatusError carrying status and body, logged here so every remote
// failure lands in error.log with its payload.
func (c *Client) doGet(ctx context.Context, path, query string) ([]byte, error) {
	params := url.Values{"sysparm_query": {query}}
	apiURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.Creds.Username, c.Creds.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stalesweep/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
		if c.log != nil {
			c.log.Error("servicenow request failed",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(respBody)))
		}
		return nil, statusErr
	}

	return respBody, nil
}
