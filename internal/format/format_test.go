package format_test

import (
	"strings"
	"testing"
	"time"

	"seoaudit/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Category", "Score", "Issues")
	tb.Row("Title Tag", 85, 1)
	tb.Row("Meta Description", 100, 0)
	out := tb.String()

	if !strings.Contains(out, "Category") {
		t.Errorf("expected header 'Category' in output:\n%s", out)
	}
	if strings.Contains(out, "CATEGORY") {
		t.Errorf("header was uppercased, want authored case:\n%s", out)
	}
	if !strings.Contains(out, "Meta Description") {
		t.Errorf("expected 'Meta Description' in output:\n%s", out)
	}
	if !strings.Contains(out, "85") {
		t.Errorf("expected '85' in output:\n%s", out)
	}
	// ASCII uses box-drawing characters from StyleLight.
	if strings.Contains(out, "───") == false {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Link", "Status", "Code")
	tb.Row("https://a.example/guide", "Working", 200)
	tb.Row("https://a.example/old", "Broken", 404)
	out := tb.String()

	// Markdown tables have | delimiters and --- separator.
	if !strings.Contains(out, "| Link") {
		t.Errorf("expected markdown header with '| Link':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "Broken") {
		t.Errorf("expected 'Broken' in output:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Category", "Score")
	tb.Row("performance", 92)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	if !strings.Contains(out, "92") {
		t.Errorf("expected '92' in output:\n%s", out)
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}

	ascii := build(format.ASCII)
	md := build(format.Markdown)

	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

// --- Helper tests ---

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score, width int
		want         string
	}{
		{100, 10, "██████████"},
		{0, 10, "▒▒▒▒▒▒▒▒▒▒"},
		{50, 10, "█████▒▒▒▒▒"},
		{65, 10, "███████▒▒▒"},
		{87, 20, "█████████████████▒▒▒"},
		{-5, 4, "▒▒▒▒"},
		{120, 4, "████"},
		{50, 0, ""},
	}
	for _, tc := range tests {
		got := format.ScoreBar(tc.score, tc.width)
		if got != tc.want {
			t.Errorf("ScoreBar(%d, %d) = %q, want %q", tc.score, tc.width, got, tc.want)
		}
	}
}

func TestFmtBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{34*1024 + 205, "34.2KB"},
		{5 << 20, "5.0MB"},
	}
	for _, tc := range tests {
		got := format.FmtBytes(tc.in)
		if got != tc.want {
			t.Errorf("FmtBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{215 * time.Millisecond, "215ms"},
		{time.Second, "1s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{5*time.Minute + 15*time.Second, "5m 15s"},
	}
	for _, tc := range tests {
		got := format.FmtDuration(tc.in)
		if got != tc.want {
			t.Errorf("FmtDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"ab", 3, "ab"},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		got := format.Truncate(tc.in, tc.maxLen)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}
