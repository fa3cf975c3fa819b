// Package figmaapi is a minimal client for the design-file REST API: node
// documents, rendered images and the bitmap download behind an image URL.
package figmaapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leapstack-labs/figlens/pkg/figma"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.figma.com"

// Auth header modes.
const (
	AuthHeaderToken  = "X-Figma-Token"
	AuthHeaderBearer = "Authorization"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// ErrNotFound is returned when a response has no entry for the requested node.
var ErrNotFound = errors.New("node not found in response")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Token      string
	AuthHeader string // AuthHeaderToken (default) or AuthHeaderBearer
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the design-file API.
type Client struct {
	baseURL    string
	token      string
	authHeader string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = AuthHeaderToken
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		authHeader: cfg.AuthHeader,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

type nodesResponse struct {
	Nodes map[string]*struct {
		Document *figma.Node `json:"document"`
	} `json:"nodes"`
}

type imagesResponse struct {
	Err    any                `json:"err"`
	Images map[string]*string `json:"images"`
}

// Document fetches the node tree rooted at nodeID.
func (c *Client) Document(ctx context.Context, fileKey, nodeID string) (*figma.Node, error) {
	q := url.Values{"ids": {nodeID}}
	var resp nodesResponse
	if err := c.getJSON(ctx, "/v1/files/"+url.PathEscape(fileKey)+"/nodes?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", nodeID, err)
	}

	entry, ok := resp.Nodes[nodeID]
	if !ok || entry == nil || entry.Document == nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", nodeID, ErrNotFound)
	}
	return entry.Document, nil
}

// ImageURL asks the API to render nodeID and returns the bitmap URL.
// Format is "png", "jpg", "svg" or "pdf".
func (c *Client) ImageURL(ctx context.Context, fileKey, nodeID, format string) (string, error) {
	q := url.Values{"ids": {nodeID}, "format": {format}}
	var resp imagesResponse
	if err := c.getJSON(ctx, "/v1/images/"+url.PathEscape(fileKey)+"?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("failed to fetch image for %s: %w", nodeID, err)
	}

	u, ok := resp.Images[nodeID]
	if !ok || u == nil || *u == "" {
		return "", fmt.Errorf("failed to fetch image for %s: %w", nodeID, ErrNotFound)
	}
	return *u, nil
}

// Download fetches the raw bytes behind a rendered image URL. The URL is
// usually a signed storage link, so no auth header is sent.
func (c *Client) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.applyAuth(req)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) applyAuth(req *http.Request) {
	if c.token == "" {
		return
	}
	if c.authHeader == AuthHeaderBearer {
		req.Header.Set("Authorization", "Bearer "+c.token)
		return
	}
	req.Header.Set(AuthHeaderToken, c.token)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request", "method", req.Method, "url", redact(req.URL), "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        redact(req.URL),
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// redact drops the query string, which may carry signatures.
func redact(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""
	return clean.String()
}
