package mcp_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"seoaudit/internal/config"
	"seoaudit/internal/history"
	mcpserver "seoaudit/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})))
	os.Exit(m.Run())
}

const toolPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Compost Tumbler Comparison for Small Yards</title>
<meta name="description" content="Dual-chamber vs single-chamber compost tumblers compared on capacity, turn effort and finish time for gardens under a quarter acre.">
</head>
<body>
<h1>Compost tumbler comparison</h1>
<h2>Chamber layouts</h2>
<p>A dual chamber lets one side cure while the other fills, which is the single biggest quality-of-life difference for a small yard.</p>
<p>See the <a href="/ok">capacity table</a> and the <a href="/missing">old sizing chart</a>.</p>
</body>
</html>`

// newPageServer serves toolPage at / with one working and one dead
// link target.
func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(toolPage))
	})
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, store history.Store) *mcpserver.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Probe.TimeoutSeconds = 2
	srv, err := mcpserver.NewServer(cfg, store, "test")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func connectInMemory(t *testing.T, ctx context.Context, srv *mcpserver.Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	serverSession, err := srv.MCPServer.Connect(ctx, t1, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		for _, c := range res.Content {
			if tc, ok := c.(*sdkmcp.TextContent); ok {
				t.Fatalf("CallTool(%s) returned error: %s", name, tc.Text)
			}
		}
		t.Fatalf("CallTool(%s) returned error", name)
	}
	result := make(map[string]any)
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			if err := json.Unmarshal([]byte(tc.Text), &result); err != nil {
				t.Fatalf("unmarshal tool result: %v (text: %s)", err, tc.Text)
			}
			return result
		}
	}
	t.Fatalf("no text content in tool result")
	return nil
}

// callToolErr asserts the call fails at the tool level and returns the
// error text.
func callToolErr(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if !res.IsError {
		t.Fatalf("CallTool(%s) succeeded, want tool error", name)
	}
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestServer_ToolDiscovery(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()
	session := connectInMemory(t, ctx, srv)

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	want := map[string]bool{
		"audit_page":    false,
		"check_links":   false,
		"score_history": false,
	}
	for _, tool := range tools.Tools {
		if _, ok := want[tool.Name]; ok {
			want[tool.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("tool %q not found in ListTools", name)
		}
	}
}

func TestAuditPageTool(t *testing.T) {
	pages := newPageServer(t)
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "audit_page", map[string]any{
		"url":     pages.URL,
		"keyword": "compost",
	})

	if out["url"] != pages.URL {
		t.Errorf("url = %v, want %s", out["url"], pages.URL)
	}
	score, ok := out["overall_score"].(float64)
	if !ok || score < 0 || score > 100 {
		t.Errorf("overall_score = %v, want 0..100", out["overall_score"])
	}
	if out["grade"] == "" {
		t.Error("grade is empty")
	}

	scores, ok := out["category_scores"].(map[string]any)
	if !ok {
		t.Fatalf("category_scores missing: %v", out["category_scores"])
	}
	if len(scores) != 9 {
		t.Errorf("category_scores has %d entries, want 9", len(scores))
	}
	if _, ok := scores["link_health"]; !ok {
		t.Error("category_scores missing link_health")
	}

	rep, ok := out["report"].(map[string]any)
	if !ok {
		t.Fatalf("report missing: %v", out["report"])
	}
	if rep["url"] != pages.URL {
		t.Errorf("report.url = %v", rep["url"])
	}
	if out["saved"] != false {
		t.Errorf("saved = %v, want false without save flag", out["saved"])
	}
}

func TestAuditPageTool_SkipLinks(t *testing.T) {
	pages := newPageServer(t)
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "audit_page", map[string]any{
		"url":        pages.URL,
		"skip_links": true,
	})
	scores := out["category_scores"].(map[string]any)
	if len(scores) != 8 {
		t.Errorf("category_scores has %d entries, want 8 with skip_links", len(scores))
	}
	if _, ok := scores["link_health"]; ok {
		t.Error("link_health present despite skip_links")
	}
}

func TestAuditPageTool_SavesScan(t *testing.T) {
	pages := newPageServer(t)
	store := history.NewMemStore()
	srv := newTestServer(t, store)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "audit_page", map[string]any{
		"url":  pages.URL,
		"save": true,
	})
	if out["saved"] != true {
		t.Fatalf("saved = %v, want true", out["saved"])
	}

	scans, err := store.ListScans("", 0)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("store has %d scans, want 1", len(scans))
	}
	if scans[0].URL != pages.URL || scans[0].Score != int(out["overall_score"].(float64)) {
		t.Errorf("saved scan = %+v", scans[0])
	}
}

func TestAuditPageTool_Errors(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	// an absent url never reaches the handler: the input schema marks
	// it required, so the call fails at the protocol layer
	_, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "audit_page",
		Arguments: map[string]any{},
	})
	if err == nil || !strings.Contains(err.Error(), "url") {
		t.Errorf("missing url error = %v, want schema rejection naming url", err)
	}

	if msg := callToolErr(t, ctx, session, "audit_page", map[string]any{"url": ""}); !strings.Contains(msg, "url is required") {
		t.Errorf("empty url error = %q", msg)
	}
	if msg := callToolErr(t, ctx, session, "audit_page", map[string]any{"url": "http://"}); msg == "" {
		t.Error("invalid url produced no error text")
	}
}

func TestCheckLinksTool(t *testing.T) {
	pages := newPageServer(t)
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "check_links", map[string]any{"url": pages.URL})

	outcomes, ok := out["outcomes"].([]any)
	if !ok || len(outcomes) != 2 {
		t.Fatalf("outcomes = %v, want 2", out["outcomes"])
	}
	first := outcomes[0].(map[string]any)
	second := outcomes[1].(map[string]any)
	if first["status"] != "working" || second["status"] != "broken" {
		t.Errorf("outcome statuses = %v / %v, want working / broken", first["status"], second["status"])
	}

	health := out["health"].(map[string]any)
	if health["score"] != float64(50) {
		t.Errorf("health score = %v, want 50", health["score"])
	}
}

func TestCheckLinksTool_MaxTargets(t *testing.T) {
	pages := newPageServer(t)
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "check_links", map[string]any{
		"url":         pages.URL,
		"max_targets": 1,
	})
	outcomes := out["outcomes"].([]any)
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1 with max_targets", len(outcomes))
	}
	health := out["health"].(map[string]any)
	if health["score"] != float64(100) {
		t.Errorf("health score = %v, want 100", health["score"])
	}
}

func TestScoreHistoryTool(t *testing.T) {
	store := history.NewMemStore()
	seed := []struct {
		url   string
		score int
	}{
		{"https://a.example/", 55},
		{"https://b.example/", 72},
		{"https://a.example/", 81},
	}
	for _, s := range seed {
		if _, err := store.SaveScan(&history.Scan{URL: s.url, Score: s.score, Grade: "C"}); err != nil {
			t.Fatalf("SaveScan: %v", err)
		}
	}

	srv := newTestServer(t, store)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	out := callTool(t, ctx, session, "score_history", map[string]any{})
	if out["count"] != float64(3) {
		t.Fatalf("count = %v, want 3", out["count"])
	}
	scans := out["scans"].([]any)
	if scans[0].(map[string]any)["score"] != float64(81) {
		t.Errorf("first scan = %v, want newest (81)", scans[0])
	}
	// scans saved without category scores must still serialize the
	// field as an object, or the output schema rejects the result
	if _, ok := scans[0].(map[string]any)["category_scores"].(map[string]any); !ok {
		t.Errorf("category_scores = %v, want JSON object", scans[0].(map[string]any)["category_scores"])
	}

	out = callTool(t, ctx, session, "score_history", map[string]any{
		"url":   "https://a.example/",
		"limit": 1,
	})
	if out["count"] != float64(1) {
		t.Errorf("filtered count = %v, want 1", out["count"])
	}
}

func TestScoreHistoryTool_Disabled(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session := connectInMemory(t, ctx, srv)

	msg := callToolErr(t, ctx, session, "score_history", map[string]any{})
	if !strings.Contains(msg, "disabled") {
		t.Errorf("disabled store error = %q", msg)
	}
}
