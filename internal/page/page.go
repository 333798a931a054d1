// Package page fetches a target URL and exposes the parsed document that
// the category analyzers inspect.
package page

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is one fetched and parsed HTML document.
type Page struct {
	// URL is the final URL after any page-level redirects.
	URL *url.URL
	Doc *goquery.Document

	StatusCode   int
	Header       http.Header
	ResponseTime time.Duration
	BodySize     int

	// Text is the visible body text with scripts, styles and noscript
	// blocks removed, whitespace-normalized. Computed once at fetch time.
	Text string
}

// ErrInvalidURL marks input rejected before any request is made.
// Callers branch on it to tell bad input apart from fetch failures.
var ErrInvalidURL = errors.New("invalid url")

// NormalizeURL trims the input, defaults the scheme to https and rejects
// anything that is not a dereferenceable http(s) URL with a host. All
// rejections wrap ErrInvalidURL.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: no host", ErrInvalidURL)
	}
	return u.String(), nil
}

// Parse builds a Page from already-decoded HTML. The fetcher calls it
// after the transport work is done; tests call it to skip the network.
// Transport fields (StatusCode, Header, ResponseTime) are left for the
// caller to fill in.
func Parse(rawHTML, finalURL string) (*Page, error) {
	u, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Page{
		URL:      u,
		Doc:      doc,
		Header:   http.Header{},
		BodySize: len(rawHTML),
		Text:     visibleText(doc),
	}, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// visibleText flattens the document body to the text a reader would see.
// The document is cloned so the caller's tree keeps its script and style
// nodes (the performance analyzer counts them).
func visibleText(doc *goquery.Document) string {
	clone := goquery.CloneDocument(doc)
	clone.Find("script,style,noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	body := clone.Find("body")
	if body.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(body.Text(), " "))
}

// Words splits the visible text into words.
func (p *Page) Words() []string {
	if p.Text == "" {
		return nil
	}
	return strings.Fields(p.Text)
}

// IsHTTPS reports whether the page was served over TLS.
func (p *Page) IsHTTPS() bool {
	return p.URL != nil && p.URL.Scheme == "https"
}
