package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare host gets https", in: "example.com", want: "https://example.com"},
		{name: "path preserved", in: "example.com/about", want: "https://example.com/about"},
		{name: "explicit http kept", in: "http://example.com", want: "http://example.com"},
		{name: "surrounding space trimmed", in: "  https://example.com  ", want: "https://example.com"},
		{name: "empty", in: "", wantErr: true},
		{name: "spaces only", in: "   ", wantErr: true},
		{name: "ftp rejected", in: "ftp://example.com", wantErr: true},
		{name: "scheme without host", in: "https://", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NormalizeURL(%q) = %q, want error", tc.in, got)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("NormalizeURL(%q) error = %v, want ErrInvalidURL in chain", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeURL(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Widgets and More</title>
<style>body { color: red; }</style>
</head>
<body>
<h1>Widgets</h1>
<p>Quality widgets since 1999.</p>
<script>console.log("tracking");</script>
</body>
</html>`

func TestFetch_ParsesPage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{})
	p, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got := p.Doc.Find("title").Text(); got != "Widgets and More" {
		t.Errorf("title = %q, want %q", got, "Widgets and More")
	}
	if p.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", p.StatusCode)
	}
	if p.BodySize == 0 {
		t.Error("BodySize = 0, want > 0")
	}
	if strings.Contains(p.Text, "tracking") {
		t.Errorf("visible text contains script content: %q", p.Text)
	}
	if strings.Contains(p.Text, "color: red") {
		t.Errorf("visible text contains style content: %q", p.Text)
	}
	if !strings.Contains(p.Text, "Quality widgets since 1999.") {
		t.Errorf("visible text missing paragraph: %q", p.Text)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Landed</title></head><body>ok</body></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(FetchConfig{})
	p, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasSuffix(p.URL.Path, "/final") {
		t.Errorf("final URL = %s, want path /final", p.URL)
	}
	if got := p.Doc.Find("title").Text(); got != "Landed" {
		t.Errorf("title = %q, want %q", got, "Landed")
	}
}

func TestFetch_RejectsErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{})
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch of 404 page succeeded, want error")
	}
}

func TestFetch_RejectsNonHTML(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	f := NewFetcher(FetchConfig{})
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch of PDF succeeded, want error")
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	t.Parallel()
	f := NewFetcher(FetchConfig{})
	if _, err := f.Fetch(context.Background(), ""); err == nil {
		t.Fatal("Fetch of empty URL succeeded, want error")
	}
}
