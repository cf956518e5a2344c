package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// HTTPClientConfig contains configuration for HTTP clients
type HTTPClientConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
	RateLimiter      *RateLimiter
	UserAgent        string
	Debug            bool
	Headers          map[string]string
}

// DefaultHTTPClientConfig returns a default HTTP client configuration
func DefaultHTTPClientConfig() *HTTPClientConfig {
	return &HTTPClientConfig{
		Timeout:          30 * time.Second,
		RetryCount:       2,
		RetryWaitTime:    500 * time.Millisecond,
		RetryMaxWaitTime: 10 * time.Second,
		RateLimiter:      NewRateLimiter(DefaultRateLimiterConfig()),
		UserAgent:        "statusboard/1.0",
		Headers:          make(map[string]string),
	}
}

// NewHTTPClient creates a resty client with JSON codec, rate limiting, logging and retry conditions
func NewHTTPClient(config *HTTPClientConfig) *resty.Client {
	if config == nil {
		config = DefaultHTTPClientConfig()
	}

	defaults := DefaultHTTPClientConfig()
	if config.RetryWaitTime <= 0 {
		config.RetryWaitTime = defaults.RetryWaitTime
	}
	if config.RetryMaxWaitTime <= 0 {
		config.RetryMaxWaitTime = defaults.RetryMaxWaitTime
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	client := resty.New()

	if config.BaseURL != "" {
		client.SetBaseURL(strings.TrimRight(config.BaseURL, "/"))
	}
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(config.RetryCount)
	client.SetRetryWaitTime(config.RetryWaitTime)
	client.SetRetryMaxWaitTime(config.RetryMaxWaitTime)
	client.SetHeader("User-Agent", config.UserAgent)
	client.SetHeader("Accept", "application/json")
	client.SetDebug(config.Debug)
	client.SetJSONMarshaler(json.Marshal)
	client.SetJSONUnmarshaler(json.Unmarshal)

	for key, value := range config.Headers {
		client.SetHeader(key, value)
	}

	if config.RateLimiter != nil {
		limiter := config.RateLimiter
		client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
			if err := limiter.Wait(req.Context()); err != nil {
				return fmt.Errorf("rate limiter error: %w", err)
			}
			return nil
		})
	}

	logger := GetGlobalLogger().WithComponent("http")

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.WithFields(map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		}).Debug("Making HTTP request")
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		entry := logger.WithFields(map[string]interface{}{
			"method":      resp.Request.Method,
			"url":         resp.Request.URL,
			"status_code": resp.StatusCode(),
			"duration":    resp.Time(),
		})

		if resp.IsError() {
			entry.Warn("HTTP request failed")
		} else {
			entry.Debug("HTTP request completed")
		}
		return nil
	})

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return IsRetryableError(err)
		}

		switch r.StatusCode() {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	})

	return client
}

// HTTPClient is a small JSON-over-HTTP helper used for webhooks
type HTTPClient struct {
	client *resty.Client
}

// NewHTTPClientFromConfig creates a new HTTPClient with the specified configuration
func NewHTTPClientFromConfig(config HTTPClientConfig) *HTTPClient {
	return &HTTPClient{client: NewHTTPClient(&config)}
}

// SetAuthToken sets bearer token authentication for the HTTP client
func (h *HTTPClient) SetAuthToken(token string) {
	h.client.SetAuthToken(token)
}

// Get performs a GET request and unmarshals the response into the result
func (h *HTTPClient) Get(ctx context.Context, path string, result interface{}) error {
	req := h.client.R().SetContext(ctx)
	if result != nil {
		req = req.SetResult(result)
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}
	return CheckResponse(resp)
}

// Post performs a POST request with the given body and unmarshals the response
func (h *HTTPClient) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := h.client.R().SetContext(ctx)
	if body != nil {
		req = req.SetBody(body)
	}
	if result != nil {
		req = req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return err
	}
	return CheckResponse(resp)
}

// CheckResponse converts a 4xx/5xx response into an *HTTPError
func CheckResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	return &HTTPError{
		StatusCode: resp.StatusCode(),
		Method:     resp.Request.Method,
		URL:        resp.Request.URL,
		Message:    strings.TrimSpace(string(resp.Body())),
	}
}

// HTTPError represents an HTTP error response
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.URL == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, msg)
}

