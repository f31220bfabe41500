// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client calls a running ps-search server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/internal/httputil"
	"github.com/pdiddy/ps-search/pkg/types"
)

const defaultTimeout = 30 * time.Second

// Client posts search requests to a server.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	http       *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMaxRetries sets the retry budget for 429/503 responses.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithLogger sets the logger used for retry messages.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a Client for the server at baseURL (e.g. "http://localhost:5000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search posts req to /search. A "no matches" reply is not an error: it is
// returned with Status "error" and an empty Results slice. Non-200 replies
// are errors.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) (types.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, httpReq, c.maxRetries, c.logger)
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("reading response: %w", err)
	}

	var out types.SearchResponse
	decodeErr := json.Unmarshal(data, &out)
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if decodeErr == nil && out.Message != "" {
			msg = out.Message
		}
		return types.SearchResponse{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return types.SearchResponse{}, fmt.Errorf("decoding response: %w", decodeErr)
	}
	return out, nil
}
