// Package client talks to a running qhgd over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/talgya/quantum-gematria/internal/api"
	"github.com/talgya/quantum-gematria/internal/chart"
	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/persistence"
)

// StatusError is a non-200 response from the API.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Code, strings.TrimSpace(e.Body))
}

// Status mirrors GET /api/v1/status.
type Status struct {
	Name          string             `json:"name"`
	Version       string             `json:"version"`
	DefaultScheme string             `json:"default_scheme"`
	Schemes       []string           `json:"schemes"`
	History       bool               `json:"history"`
	HistoryLimit  int                `json:"history_limit"`
	Thresholds    map[string]float64 `json:"thresholds"`
}

// History mirrors GET /api/v1/history.
type History struct {
	Analyses    []persistence.AnalysisEntry   `json:"analyses"`
	Comparisons []persistence.ComparisonEntry `json:"comparisons"`
}

// Client calls the API. Its cookie jar carries the history session between
// calls; set Session to pin one across processes.
type Client struct {
	BaseURL    string
	AdminKey   string
	Session    string
	HTTPClient *http.Client
}

// New creates a Client targeting the given API base URL.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Status fetches server status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodGet, "/api/v1/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Schemes lists the server's encoding schemes in order.
func (c *Client) Schemes(ctx context.Context) ([]string, error) {
	var body struct {
		Schemes []string `json:"schemes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/schemes", nil, &body); err != nil {
		return nil, err
	}
	return body.Schemes, nil
}

// Analyze analyzes text under scheme (empty selects the server default).
func (c *Client) Analyze(ctx context.Context, text, scheme string) (*engine.Analysis, error) {
	var a engine.Analysis
	req := map[string]string{"text": text, "scheme": scheme}
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyze", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// AnalyzeBatch analyzes several texts in one request.
func (c *Client) AnalyzeBatch(ctx context.Context, texts []string, scheme string) ([]*engine.Analysis, error) {
	var body struct {
		Results []*engine.Analysis `json:"results"`
	}
	req := map[string]any{"texts": texts, "scheme": scheme}
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyze/batch", req, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// Compare compares two phrases.
func (c *Client) Compare(ctx context.Context, phrase1, phrase2 string) (*engine.Comparison, error) {
	var cmp engine.Comparison
	req := map[string]string{"phrase1": phrase1, "phrase2": phrase2}
	if err := c.do(ctx, http.MethodPost, "/api/v1/compare", req, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// Chart fetches the chart series for text.
func (c *Client) Chart(ctx context.Context, text, scheme string) (*chart.Chart, error) {
	var ch chart.Chart
	req := map[string]string{"text": text, "scheme": scheme}
	if err := c.do(ctx, http.MethodPost, "/api/v1/chart", req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// History fetches this client's session history.
func (c *Client) History(ctx context.Context) (*History, error) {
	var h History
	if err := c.do(ctx, http.MethodGet, "/api/v1/history", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ClearHistory clears this client's session history.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/history/clear", nil, nil)
}

// Purge clears every session's history. It needs AdminKey.
func (c *Client) Purge(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/history/purge", nil, nil)
}

// do sends a request and decodes a 200 response into target when non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AdminKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.AdminKey)
	}
	if c.Session != "" {
		req.AddCookie(&http.Cookie{Name: api.SessionCookie, Value: c.Session})
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(respBody)}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
