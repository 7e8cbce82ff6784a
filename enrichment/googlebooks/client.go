// Package googlebooks looks up cover images and descriptions by ISBN in
// the Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	DefaultTimeout = 10 * time.Second
	// MaxTimeout caps how long a catalog operation can be held up by a lookup
	MaxTimeout = 15 * time.Second

	maxBodyBytes = 1 << 20
)

// Lookup outcomes, as reported to a Recorder
const (
	OutcomeHit       = "hit"
	OutcomeMiss      = "miss"
	OutcomeError     = "error"
	OutcomeThrottled = "throttled"
)

// Recorder receives one outcome per lookup
type Recorder interface {
	RecordEnrichment(ctx context.Context, outcome string)
}

// Client implements catalog.Enricher. It never retries and never returns
// an error: every failure degrades to empty metadata.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   Recorder
	logger     zerolog.Logger
}

// Compile-time check that Client implements catalog.Enricher.
var _ catalog.Enricher = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at another volumes API root (tests, proxies)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout bounds a whole lookup. Values above MaxTimeout are capped.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 || d > MaxTimeout {
			d = MaxTimeout
		}
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the transport; its timeout is kept if set, else DefaultTimeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Timeout == 0 {
			hc.Timeout = DefaultTimeout
		}
		c.httpClient = hc
	}
}

// WithRateLimit allows rps lookups per second with the given burst.
// Lookups over the limit are skipped, not delayed.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client with DefaultBaseURL and DefaultTimeout
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// volumesResponse is the subset of the volumes search response we read
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Description string `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// FetchBookMetadata returns the first volume's thumbnail and description
func (c *Client) FetchBookMetadata(ctx context.Context, isbn string) catalog.Metadata {
	if c.limiter != nil && !c.limiter.Allow() {
		c.logger.Debug().Str("isbn", isbn).Msg("enrichment skipped by rate limit")
		c.record(ctx, OutcomeThrottled)
		return catalog.Metadata{}
	}

	meta, err := c.fetch(ctx, isbn)
	if err != nil {
		c.logger.Warn().Err(err).Str("isbn", isbn).Msg("enrichment failed")
		c.record(ctx, OutcomeError)
		return catalog.Metadata{}
	}
	if meta == (catalog.Metadata{}) {
		c.record(ctx, OutcomeMiss)
		return meta
	}
	c.record(ctx, OutcomeHit)
	return meta
}

func (c *Client) fetch(ctx context.Context, isbn string) (catalog.Metadata, error) {
	u, err := url.Parse(c.baseURL + "/volumes")
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("parsing base url: %w", err)
	}
	q := u.Query()
	q.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("API request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Metadata{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&result); err != nil {
		return catalog.Metadata{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Items) == 0 {
		c.logger.Debug().Str("isbn", isbn).Msg("no volumes found")
		return catalog.Metadata{}, nil
	}

	vol := result.Items[0].VolumeInfo
	return catalog.Metadata{
		CoverURL:    vol.ImageLinks.Thumbnail,
		Description: vol.Description,
	}, nil
}

func (c *Client) record(ctx context.Context, outcome string) {
	if c.recorder != nil {
		c.recorder.RecordEnrichment(ctx, outcome)
	}
}
