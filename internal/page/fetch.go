package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"seoaudit/internal/logging"
)

const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBodyBytes = 5 << 20 // 5 MiB
	DefaultUserAgent    = "seoaudit/1.0 (+https://github.com/seoaudit)"
)

// FetchConfig tunes the page fetcher. Zero values take the defaults above.
type FetchConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string

	// Client overrides the internal HTTP client; used by tests.
	Client *http.Client
}

// Fetcher downloads and parses HTML pages. Unlike the link prober it
// follows redirects, since the audit targets wherever the URL settles.
type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
	userAgent    string
	logger       *slog.Logger
}

// NewFetcher builds a Fetcher with a tuned transport.
func NewFetcher(cfg FetchConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   cfg.Timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}
	return &Fetcher{
		client:       client,
		maxBodyBytes: cfg.MaxBodyBytes,
		userAgent:    cfg.UserAgent,
		logger:       logging.New("fetch"),
	}
}

// Fetch downloads rawURL, requires a 2xx status after redirects and
// returns the parsed page. The response time covers request start to
// body fully read, which is what the performance analyzer scores.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", normalized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: http status %d", normalized, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "" {
		if !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
			return nil, fmt.Errorf("fetch %s: non-html content type %q", normalized, mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	elapsed := time.Since(start)

	utf8Body, err := decodeCharset(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	finalURL := resp.Request.URL
	p, err := Parse(string(utf8Body), finalURL.String())
	if err != nil {
		return nil, err
	}
	p.StatusCode = resp.StatusCode
	p.Header = resp.Header
	p.ResponseTime = elapsed
	p.BodySize = len(body)

	f.logger.Debug("page fetched",
		"url", finalURL.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", elapsed,
	)
	return p, nil
}

// decodeCharset converts the raw body to UTF-8 using the declared or
// sniffed encoding, keeping already-valid UTF-8 on decoder failure.
func decodeCharset(data []byte, contentType string) ([]byte, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return data, nil
		}
		return nil, err
	}
	return decoded, nil
}
