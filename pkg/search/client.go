package search

// ABOUTME: Tavily HTTP client with typed request and response models
// ABOUTME: Failures carry codes and request context; 429 and 5xx are retryable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

// Defaults applied by NewClient.
const (
	DefaultBaseURL     = "https://api.tavily.com"
	DefaultMaxResults  = 5
	DefaultMaxTokens   = 4000
	DefaultSearchDepth = "basic"
	DefaultTimeout     = 30 * time.Second

	// maxErrorBody bounds how much of an error response is quoted.
	maxErrorBody = 200
)

// Keys under which a server publishes search settings in a tool's state.
const (
	StateKeyAPIKey      = "search.api_key"
	StateKeyBaseURL     = "search.base_url"
	StateKeyMaxResults  = "search.max_results"
	StateKeyMaxTokens   = "search.max_tokens"
	StateKeySearchDepth = "search.search_depth"
)

// APIKeyEnvVar is consulted when no API key is configured.
const APIKeyEnvVar = "TAVILY_API_KEY"

// Error codes.
const (
	ErrCodeMissingAPIKey = "SEARCH_MISSING_API_KEY"
	ErrCodeEmptyQuery    = "SEARCH_EMPTY_QUERY"
	ErrCodeTransport     = "SEARCH_TRANSPORT"
	ErrCodeHTTPStatus    = "SEARCH_HTTP_STATUS"
	ErrCodeDecode        = "SEARCH_DECODE"
)

// Config configures a Client. Zero values take the defaults above.
type Config struct {
	APIKey      string        `yaml:"api_key" json:"-"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	MaxResults  int           `yaml:"max_results" json:"max_results"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	SearchDepth string        `yaml:"search_depth" json:"search_depth"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.SearchDepth == "" {
		c.SearchDepth = DefaultSearchDepth
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Request is the body POSTed to /search.
type Request struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// Response is the subset of the /search response the client uses.
type Response struct {
	Query        string   `json:"query"`
	Answer       string   `json:"answer,omitempty"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time,omitempty"`
}

// Result is a single search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Client talks to the Tavily API. It is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.NewErrorWithCode(ErrCodeMissingAPIKey,
			"Tavily API key is not configured; set TAVILY_API_KEY")
	}
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Search runs a query and returns the decoded response.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewErrorWithCode(ErrCodeEmptyQuery, "search query must not be empty")
	}

	body, err := json.Marshal(Request{
		APIKey:      c.cfg.APIKey,
		Query:       query,
		SearchDepth: c.cfg.SearchDepth,
		MaxResults:  c.cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	url := c.cfg.BaseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.EnrichErrorWithRequest(
			errors.Wrap(err, "tavily request failed").WithCode(ErrCodeTransport).SetRetryable(true),
			http.MethodPost, url, 0)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("tavily API returned status %d", resp.StatusCode)
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg += ": " + s
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, errors.EnrichErrorWithRequest(
			errors.NewErrorWithCode(ErrCodeHTTPStatus, msg).SetRetryable(retryable),
			http.MethodPost, url, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode tavily response").WithCode(ErrCodeDecode)
	}
	return &out, nil
}

// ContextItem is one entry of the search context.
type ContextItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Context searches and returns a JSON array of results trimmed to the
// configured token budget.
func (c *Client) Context(ctx context.Context, query string) (string, error) {
	resp, err := c.Search(ctx, query)
	if err != nil {
		return "", err
	}
	items := make([]ContextItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, ContextItem{URL: r.URL, Content: r.Content})
	}
	return BuildContext(items, c.cfg.MaxTokens)
}
