package detail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Retriever performs the single network read of a detail document
type Retriever interface {
	Retrieve(ctx context.Context, link string) ([]byte, error)
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// HTTPOptions configures an HTTPRetriever
type HTTPOptions struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	// MaxRequestsPerSecond is a hard ceiling independent of pipeline pauses; 0 disables it
	MaxRequestsPerSecond float64
}

// HTTPRetriever fetches detail documents over plain HTTP
type HTTPRetriever struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// NewHTTPRetriever creates a new HTTPRetriever
func NewHTTPRetriever(opts HTTPOptions) *HTTPRetriever {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= 500
		})
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	r := &HTTPRetriever{client: client}
	if opts.MaxRequestsPerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.MaxRequestsPerSecond), 1)
	}
	return r
}

// Retrieve implements Retriever
func (r *HTTPRetriever) Retrieve(ctx context.Context, link string) ([]byte, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := r.client.R().SetContext(ctx).Get(link)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", link, err)
	}
	if resp.IsError() {
		return nil, &StatusError{URL: link, Code: resp.StatusCode()}
	}
	return resp.Body(), nil
}
