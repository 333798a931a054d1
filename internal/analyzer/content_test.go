package analyzer

import (
	"strings"
	"testing"
)

// longBody builds six paragraphs of easy ten-word sentences (720 words)
// plus a list, which clears every structural check.
func longBody() string {
	sentence := "The quick brown fox jumps over the lazy sleeping dog. "
	para := "<p>" + strings.Repeat(sentence, 12) + "</p>"
	return strings.Repeat(para, 6) + "<ul><li>First point</li><li>Second point</li></ul>"
}

func TestContent_ThinContent(t *testing.T) {
	t.Parallel()
	html := `<html><body><p>Short page about widgets with barely any real text inside it at all.</p></body></html>`
	res := Content{}.Analyze(parse(t, html, "https://example.com"))
	// -30 thin content, -10 too few paragraphs.
	if res.Score != 60 {
		t.Errorf("score = %d, want 60 (issues %+v)", res.Score, res.Issues)
	}
	if !hasSeverity(res.Issues, SeverityWarning) {
		t.Errorf("issues %+v missing thin-content warning", res.Issues)
	}
}

func TestContent_SubstantialContent(t *testing.T) {
	t.Parallel()
	res := Content{}.Analyze(parse(t, "<html><body>"+longBody()+"</body></html>", "https://example.com"))
	// 720 words: acceptable band (-10), readable, well-structured.
	if res.Score != 90 {
		t.Errorf("score = %d, want 90 (issues %+v details %+v)", res.Score, res.Issues, res.Details)
	}
	wc, ok := res.Details["word_count"].(int)
	if !ok || wc < 700 || wc > 740 {
		t.Errorf("word_count = %v, want ~720", res.Details["word_count"])
	}
	if res.Details["readability"] != "Easy to read" {
		t.Errorf("readability = %v, want easy", res.Details["readability"])
	}
}

func TestContent_KeywordStuffing(t *testing.T) {
	t.Parallel()
	res := Content{Keyword: "fox"}.Analyze(parse(t, "<html><body>"+longBody()+"</body></html>", "https://example.com"))
	// "fox" appears once per sentence: 72/720 = 10% density.
	if res.Score != 70 {
		t.Errorf("score = %d, want 70 (issues %+v)", res.Score, res.Issues)
	}
	if !hasSeverity(res.Issues, SeverityWarning) {
		t.Errorf("issues %+v missing stuffing warning", res.Issues)
	}
	density, ok := res.Details["keyword_density"].(float64)
	if !ok || density < 9 || density > 11 {
		t.Errorf("keyword_density = %v, want ~10", res.Details["keyword_density"])
	}
}

func TestContent_LowKeywordDensityIsInfoOnly(t *testing.T) {
	t.Parallel()
	html := "<html><body>" + longBody() + "<p>Our gearbox page.</p></body></html>"
	res := Content{Keyword: "gearbox"}.Analyze(parse(t, html, "https://example.com"))
	if !hasSeverity(res.Issues, SeverityInfo) {
		t.Errorf("issues %+v missing low-density info", res.Issues)
	}
	if hasSeverity(res.Issues, SeverityCritical) {
		t.Errorf("low density must not be critical: %+v", res.Issues)
	}
}

func TestFleschReadingEase(t *testing.T) {
	t.Parallel()
	easy := fleschReadingEase("The cat sat on the mat. The dog ran to the park. We like short words.")
	if easy < 60 {
		t.Errorf("easy text scored %.1f, want >= 60", easy)
	}
	dense := fleschReadingEase(strings.Repeat(
		"Institutional organizational considerations necessitate comprehensive infrastructural reconceptualization throughout multidimensional operational paradigms continuously. ", 5))
	if dense >= 30 {
		t.Errorf("dense text scored %.1f, want < 30", dense)
	}
	if got := fleschReadingEase(""); got != 0 {
		t.Errorf("empty text scored %.1f, want 0", got)
	}
}

func TestSentenceCount(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"One sentence.", 1},
		{"One. Two! Three?", 3},
		{"Ellipsis... still one", 2},
		{"No terminator", 1},
	}
	for _, tc := range cases {
		if got := sentenceCount(tc.in); got != tc.want {
			t.Errorf("sentenceCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
