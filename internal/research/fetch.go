package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultFetchTimeout = 10 * time.Second

	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	scrapingBeeBaseURL = "https://app.scrapingbee.com/api/v1/"
	maxPageSize        = 5 * 1024 * 1024
)

// Fetcher returns the raw HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPFetcher fetches pages directly with a browser user agent, or through
// ScrapingBee when an API key is configured.
type HTTPFetcher struct {
	client         *http.Client
	timeout        time.Duration
	scrapingBeeKey string
	scrapingBeeURL string
}

type FetcherOption func(*HTTPFetcher)

// WithScrapingBee routes every fetch through the ScrapingBee API.
func WithScrapingBee(apiKey string) FetcherOption {
	return func(f *HTTPFetcher) { f.scrapingBeeKey = apiKey }
}

// WithScrapingBeeEndpoint overrides the ScrapingBee API endpoint.
func WithScrapingBeeEndpoint(endpoint string) FetcherOption {
	return func(f *HTTPFetcher) { f.scrapingBeeURL = endpoint }
}

func NewHTTPFetcher(timeout time.Duration, opts ...FetcherOption) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	f := &HTTPFetcher{
		client:         &http.Client{},
		timeout:        timeout,
		scrapingBeeURL: scrapingBeeBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	target := pageURL
	if f.scrapingBeeKey != "" {
		q := url.Values{}
		q.Set("api_key", f.scrapingBeeKey)
		q.Set("url", pageURL)
		q.Set("render_js", "false")
		target = f.scrapingBeeURL + "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", pageURL, err)
	}
	if f.scrapingBeeKey == "" {
		req.Header.Set("User-Agent", browserUserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not fetch URL %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", pageURL, err)
	}
	return string(body), nil
}
