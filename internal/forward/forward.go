// Package forward is the relay between the gateway and the automation
// engine. It issues exactly one outbound call per inbound request and
// hands the upstream response back untouched: the engine is the single
// source of truth, so the gateway never reinterprets what it returns.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnreachable means no HTTP response was obtained at all. It is the
// one failure the gateway synthesizes itself (502).
var ErrUnreachable = errors.New("automation engine unreachable")

// Result is the upstream response, success or error, verbatim.
type Result struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

type Forwarder struct {
	client *http.Client
}

func New(timeout time.Duration) *Forwarder {
	return &Forwarder{
		client: &http.Client{Timeout: timeout},
	}
}

// Forward POSTs the payload as JSON to the destination. An upstream HTTP
// error is not an error here: the caller relays whatever status and body
// came back. No retries, no batching, no caching.
func (f *Forwarder) Forward(ctx context.Context, destination string, payload any) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forwarding to %s: %w", destination, ErrUnreachable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", ErrUnreachable)
	}

	return &Result{
		StatusCode:  resp.StatusCode,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
