// Package apiclient is the dashboard's gateway client: every call
// carries the session bearer credential, and the first 401 observed
// expires the session for all callers at once.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/aggregate"
)

// APIError carries a non-2xx gateway response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.Status)
	}

	return fmt.Sprintf("gateway returned status %d: %s", e.Status, e.Message)
}

// Client talks to the gateway's /api surface.
type Client struct {
	baseURL string
	session *Session
	client  *http.Client
}

func New(baseURL string, session *Session, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Session() *Session { return c.session }

// Transactions fetches the list for an inclusive date window. Empty
// bounds fetch everything the engine returns by default.
func (c *Client) Transactions(ctx context.Context, start, end string) ([]aggregate.Transaction, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/transactions", q, nil)
	if err != nil {
		return nil, err
	}

	var txs []aggregate.Transaction
	if err := json.Unmarshal(unwrap(raw), &txs); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}

	return txs, nil
}

// Stats fetches the dashboard or profile snapshot.
func (c *Client) Stats(ctx context.Context, mode, startDate string) (aggregate.StatsSnapshot, error) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	if startDate != "" {
		q.Set("startDate", startDate)
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/stats", q, nil)
	if err != nil {
		return aggregate.StatsSnapshot{}, err
	}

	var snapshot aggregate.StatsSnapshot
	if err := json.Unmarshal(unwrap(raw), &snapshot); err != nil {
		return aggregate.StatsSnapshot{}, fmt.Errorf("decoding stats: %w", err)
	}

	return snapshot, nil
}

func (c *Client) Categories(ctx context.Context) ([]aggregate.Category, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []aggregate.Category
	if err := json.Unmarshal(unwrap(raw), &categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	return categories, nil
}

// CategoryStats fetches the expense breakdown for a window. Percentages
// are recomputed locally so stale upstream values never reach the view.
func (c *Client) CategoryStats(ctx context.Context, start, end string) ([]aggregate.BreakdownEntry, error) {
	q := url.Values{}
	if start != "" {
		q.Set("startDate", start)
	}
	if end != "" {
		q.Set("endDate", end)
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/stats/categories", q, nil)
	if err != nil {
		return nil, err
	}

	var entries []aggregate.BreakdownEntry
	if err := json.Unmarshal(unwrap(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding category stats: %w", err)
	}

	return aggregate.WithPercentages(entries), nil
}

func (c *Client) AddTransaction(ctx context.Context, in action.TransactionInput) error {
	_, err := c.do(ctx, http.MethodPost, "/api/transactions", nil, in)

	return err
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, in action.TransactionInput) error {
	_, err := c.do(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(id), nil, in)

	return err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil)

	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	// An expired session short-circuits before any network traffic so
	// queued fetches cannot pile onto a dead credential.
	if c.session.Expired() {
		return nil, ErrSessionExpired
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.session.Credential())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Expire()

		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &envelope)

		return nil, &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	return raw, nil
}

// unwrap tolerates both the bare payload and the {"data": ...} envelope
// some workflow versions emit.
func unwrap(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}

	return raw
}
