// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed searches PubMed through the NCBI E-utilities API. A search
// is two sequential calls: esearch resolves the query to PubMed ids, then
// esummary fetches the records for those ids.
package pubmed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citation-engine/internal/httputil"
	"github.com/pdiddy/citation-engine/internal/logging"
	"github.com/pdiddy/citation-engine/pkg/types"
)

const (
	// DefaultBaseURL is the E-utilities endpoint root.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is the number of ids requested when none is given.
	DefaultMaxResults = 20

	// MaxResultsLimit caps a single esearch page.
	MaxResultsLimit = 200

	// NCBI allows 3 requests per second without an API key and 10 with one.
	anonymousRate = 3.0
	keyedRate     = 10.0

	defaultUserAgent = "citation-engine/0.1"
)

var (
	// ErrEmptyQuery is returned when the search term is blank.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrInvalidResponse indicates an unexpected E-utilities response.
	ErrInvalidResponse = errors.New("invalid response from PubMed")
)

// Client is a rate-limited E-utilities client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	email      string
	tool       string
	userAgent  string
	maxResults int
	rps        float64
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom endpoint root (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIKey sets the NCBI API key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithEmail sets the contact address sent with each request.
func WithEmail(email string) Option {
	return func(c *Client) { c.email = email }
}

// WithTool sets the tool name sent with each request.
func WithTool(tool string) Option {
	return func(c *Client) { c.tool = tool }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxResults sets the default number of ids requested.
func WithMaxResults(n int) Option {
	return func(c *Client) { c.maxResults = n }
}

// WithRateLimit sets the request rate. Zero or negative disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.rps = rps }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client. Without WithRateLimit the NCBI default for the
// presence or absence of an API key applies.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		maxResults: DefaultMaxResults,
		log:        logging.Component("pubmed"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.rps == 0 {
		c.rps = anonymousRate
		if c.apiKey != "" {
			c.rps = keyedRate
		}
	}
	if c.rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(c.rps), 1)
	}
	return c
}

// NewClientFromConfig creates a client from search settings, falling back
// to defaults for zero values.
func NewClientFromConfig(cfg types.SearchConfig, opts ...Option) *Client {
	var base []Option
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	if cfg.MaxResults > 0 {
		base = append(base, WithMaxResults(cfg.MaxResults))
	}
	base = append(base,
		WithAPIKey(cfg.APIKey),
		WithEmail(cfg.Email),
		WithTool(cfg.Tool),
		WithRateLimit(cfg.RequestsPerSecond),
	)
	return NewClient(append(base, opts...)...)
}

// Search resolves query to PubMed ids and returns their summaries in
// relevance order. maxResults <= 0 uses the client default. Either call
// failing fails the whole search; no partial results are returned.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	ids, err := c.SearchIDs(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.SearchResult{}, nil
	}
	results, err := c.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SearchIDs runs esearch and returns matching PubMed ids.
func (c *Client) SearchIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = c.maxResults
	}
	if maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}

	params := c.params()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))

	var resp esearchResponse
	start := time.Now()
	if err := c.get(ctx, "esearch.fcgi", params, &resp); err != nil {
		return nil, fmt.Errorf("searching PubMed: %w", err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("searching PubMed: %w: missing esearchresult", ErrInvalidResponse)
	}
	if resp.Result.Error != "" {
		return nil, fmt.Errorf("searching PubMed: %w: %s", ErrInvalidResponse, resp.Result.Error)
	}

	c.log.Debug().
		Str("query", query).
		Int("ids", len(resp.Result.IDList)).
		Dur("elapsed", time.Since(start)).
		Msg("esearch")
	return resp.Result.IDList, nil
}

// Summaries runs esummary for ids and maps each document to a SearchResult,
// following the order of the returned uid list. Documents the service
// reports as unavailable are skipped.
func (c *Client) Summaries(ctx context.Context, ids []string) ([]types.SearchResult, error) {
	if len(ids) == 0 {
		return []types.SearchResult{}, nil
	}

	params := c.params()
	params.Set("id", strings.Join(ids, ","))

	var resp esummaryResponse
	start := time.Now()
	if err := c.get(ctx, "esummary.fcgi", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching PubMed summaries: %w", err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("fetching PubMed summaries: %w: missing result", ErrInvalidResponse)
	}

	var uids []string
	if raw, ok := resp.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &uids); err != nil {
			return nil, fmt.Errorf("fetching PubMed summaries: %w: uids: %v", ErrInvalidResponse, err)
		}
	} else {
		uids = ids
	}

	results := make([]types.SearchResult, 0, len(uids))
	for _, uid := range uids {
		raw, ok := resp.Result[uid]
		if !ok {
			continue
		}
		var doc article
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("fetching PubMed summaries: %w: document %s: %v", ErrInvalidResponse, uid, err)
		}
		if doc.Error != "" {
			c.log.Debug().Str("uid", uid).Str("error", doc.Error).Msg("skipping unavailable summary")
			continue
		}
		if doc.UID == "" {
			doc.UID = uid
		}
		results = append(results, doc.toResult())
	}

	c.log.Debug().
		Int("requested", len(ids)).
		Int("returned", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("esummary")
	return results, nil
}

func (c *Client) params() url.Values {
	params := url.Values{
		"db":      {"pubmed"},
		"retmode": {"json"},
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	err := httputil.GetJSON(ctx, c.httpClient, c.limiter, reqURL, c.userAgent, v)
	if errors.Is(err, httputil.ErrInvalidJSON) {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return err
}
