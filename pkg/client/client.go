package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
)

const (
	DefaultIncidentLimit = 50
	DefaultSearchLimit   = 20
)

const (
	pathStatusPages   = "/api/v1/statusPages"
	pathSearch        = "/api/v1/statusPages/search"
	pathStatusPage    = "/api/v1/statusPage"
	pathCurrentStatus = "/api/v1/currentStatus"
	pathIncidents     = "/api/v1/incidents"
)

// ErrNotFound is returned when the API does not know the requested status page
var ErrNotFound = errors.New("status page not found")

// HTTPError is returned for 4xx/5xx API responses
type HTTPError = utils.HTTPError

// Source is the read side of the statusphere API
type Source interface {
	ListStatusPages(ctx context.Context) ([]api.StatusPage, error)
	SearchStatusPages(ctx context.Context, query string, limit int) ([]api.StatusPage, error)
	GetStatusPage(ctx context.Context, name string) (*api.StatusPage, error)
	GetCurrentStatus(ctx context.Context, statusPageURL string) (*api.CurrentStatusResponse, error)
	GetIncidents(ctx context.Context, statusPageURL string, limit int) ([]api.Incident, error)
}

// Options configures a Client
type Options struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	UserAgent    string
	CacheTTL     time.Duration
	CacheSize    int
	RateLimit    float64
	RateBurst    int
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// Client talks to the statusphere API over HTTP
type Client struct {
	http   *resty.Client
	pages  *expirable.LRU[string, api.StatusPage]
	logger *utils.Logger
}

// New creates a client for the API at opts.BaseURL
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("API base URL is required")
	}

	httpConfig := &utils.HTTPClientConfig{
		BaseURL:          opts.BaseURL,
		Timeout:          opts.Timeout,
		RetryCount:       opts.RetryCount,
		RetryWaitTime:    opts.RetryWait,
		RetryMaxWaitTime: opts.RetryMaxWait,
		UserAgent:        opts.UserAgent,
	}
	if opts.RateLimit > 0 {
		httpConfig.RateLimiter = utils.NewRateLimiter(&utils.RateLimiterConfig{
			RequestsPerSecond: opts.RateLimit,
			Burst:             opts.RateBurst,
			Name:              "statusphere",
		})
	}

	restyClient := utils.NewHTTPClient(httpConfig)
	if opts.Token != "" {
		restyClient.SetAuthToken(opts.Token)
	}

	c := &Client{
		http:   restyClient,
		logger: utils.GetGlobalLogger().WithComponent("client"),
	}
	if httpConfig.RateLimiter != nil {
		c.logger.Debug(httpConfig.RateLimiter.GetStats().String())
	}

	if opts.CacheTTL > 0 && opts.CacheSize > 0 {
		c.pages = expirable.NewLRU[string, api.StatusPage](opts.CacheSize, nil, opts.CacheTTL)
	}

	return c, nil
}

// NewFromConfig creates a client from the application configuration
func NewFromConfig(cfg *config.Config) (*Client, error) {
	retries := cfg.Behavior.Retry.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	return New(Options{
		BaseURL:      cfg.API.BaseURL,
		Token:        cfg.API.Token,
		Timeout:      cfg.API.Timeout,
		UserAgent:    cfg.API.UserAgent,
		CacheTTL:     cfg.API.CacheTTL,
		CacheSize:    cfg.API.CacheSize,
		RateLimit:    cfg.Behavior.RateLimit.RequestsPerSecond,
		RateBurst:    cfg.Behavior.RateLimit.Burst,
		RetryCount:   retries,
		RetryWait:    cfg.Behavior.Retry.Backoff,
		RetryMaxWait: cfg.Behavior.Retry.MaxBackoff,
	})
}

// ListStatusPages returns every status page known to the API
func (c *Client) ListStatusPages(ctx context.Context) ([]api.StatusPage, error) {
	var result api.StatusPagesResponse
	if err := c.get(ctx, pathStatusPages, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list status pages: %w", err)
	}

	c.remember(result.StatusPages...)
	c.logger.WithField("cached", c.cacheLen()).Debugf("Listed %d status pages", len(result.StatusPages))
	return result.StatusPages, nil
}

// SearchStatusPages runs a server-side search. A blank query returns no results without a request.
func (c *Client) SearchStatusPages(ctx context.Context, query string, limit int) ([]api.StatusPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var result api.StatusPagesResponse
	if err := c.get(ctx, pathSearch, map[string]string{"query": query}, &result); err != nil {
		return nil, fmt.Errorf("failed to search status pages for %q: %w", query, err)
	}

	pages := result.StatusPages
	if len(pages) > limit {
		pages = pages[:limit]
	}
	return pages, nil
}

// GetStatusPage looks a status page up by name, consulting the cache first
func (c *Client) GetStatusPage(ctx context.Context, name string) (*api.StatusPage, error) {
	if c.pages != nil {
		if page, ok := c.pages.Get(name); ok {
			c.logger.WithStatusPage(name).Debug("Status page served from cache")
			return &page, nil
		}
	}

	var result api.StatusPageResponse
	if err := c.get(ctx, pathStatusPage, map[string]string{"statusPageName": name}, &result); err != nil {
		return nil, fmt.Errorf("failed to get status page %q: %w", name, err)
	}
	if result.StatusPage.URL == "" {
		return nil, fmt.Errorf("status page %q: %w", name, ErrNotFound)
	}

	c.remember(result.StatusPage)
	return &result.StatusPage, nil
}

// GetCurrentStatus returns whether the status page currently has open incidents
func (c *Client) GetCurrentStatus(ctx context.Context, statusPageURL string) (*api.CurrentStatusResponse, error) {
	var result api.CurrentStatusResponse
	if err := c.get(ctx, pathCurrentStatus, map[string]string{"statusPageUrl": statusPageURL}, &result); err != nil {
		return nil, fmt.Errorf("failed to get current status of %s: %w", statusPageURL, err)
	}

	result.Status = api.ParseStatus(string(result.Status))
	return &result, nil
}

// GetIncidents returns up to limit incidents recorded for the status page
func (c *Client) GetIncidents(ctx context.Context, statusPageURL string, limit int) ([]api.Incident, error) {
	if limit <= 0 {
		limit = DefaultIncidentLimit
	}

	params := map[string]string{
		"statusPageUrl": statusPageURL,
		"limit":         strconv.Itoa(limit),
	}

	var result api.IncidentsResponse
	if err := c.get(ctx, pathIncidents, params, &result); err != nil {
		return nil, fmt.Errorf("failed to get incidents of %s: %w", statusPageURL, err)
	}
	return result.Incidents, nil
}

// cacheLen reports how many status pages are cached
func (c *Client) cacheLen() int {
	if c.pages == nil {
		return 0
	}
	return c.pages.Len()
}

func (c *Client) remember(pages ...api.StatusPage) {
	if c.pages == nil {
		return
	}
	for _, page := range pages {
		if page.Name != "" {
			c.pages.Add(page.Name, page)
		}
	}
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, result interface{}) error {
	var apiErr api.ErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return err
	}

	if err := utils.CheckResponse(resp); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			if apiErr.Error != "" {
				httpErr.Message = apiErr.Error
			}
			if httpErr.StatusCode == http.StatusNotFound {
				return fmt.Errorf("%w: %w", ErrNotFound, httpErr)
			}
		}
		return err
	}

	return nil
}
