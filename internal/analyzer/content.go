package analyzer

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"seoaudit/internal/page"
)

const (
	contentMinWords       = 300
	contentOptimalWords   = 1500
	contentMaxKeywordPct  = 3.0
	contentMinReadableLen = 50
)

// Content scores the body copy: volume, readability and optional
// target-keyword usage.
type Content struct {
	// Keyword, when set, enables keyword density checks.
	Keyword string
}

func (Content) Name() string { return "content" }

func (c Content) Analyze(p *page.Page) Result {
	score := 100
	var issues []Issue
	var recs []string
	details := map[string]any{}

	wordCount := 0
	for _, w := range p.Words() {
		if utf8.RuneCountInString(w) > 1 {
			wordCount++
		}
	}
	details["word_count"] = wordCount

	switch {
	case wordCount < contentMinWords:
		score -= 30
		issues = Warning(issues, fmt.Sprintf("Content is thin (%d words). Aim for at least %d words", wordCount, contentMinWords))
		recs = append(recs, fmt.Sprintf("Expand your content to at least %d words for better ranking", contentMinWords))
	case wordCount < contentOptimalWords:
		score -= 10
		details["word_count_status"] = "acceptable"
	default:
		details["word_count_status"] = "optimal"
	}

	if wordCount > contentMinReadableLen {
		flesch := fleschReadingEase(p.Text)
		details["flesch_reading_ease"] = round1(flesch)
		switch {
		case flesch >= 60:
			details["readability"] = "Easy to read"
		case flesch >= 30:
			details["readability"] = "Moderately difficult"
		default:
			details["readability"] = "Difficult to read"
			score -= 15
			issues = Warning(issues, "Content is difficult to read")
			recs = append(recs, "Simplify your writing. Use shorter sentences and simpler words")
		}

		sentences := sentenceCount(p.Text)
		details["sentence_count"] = sentences
		if sentences > 0 {
			avg := float64(wordCount) / float64(sentences)
			details["avg_sentence_length"] = round1(avg)
			if avg > 25 {
				score -= 10
				issues = Info(issues, fmt.Sprintf("Average sentence length is high (%d words)", int(math.Round(avg))))
				recs = append(recs, "Break up long sentences for better readability")
			}
		}
	}

	if c.Keyword != "" && wordCount > 0 {
		occurrences := strings.Count(strings.ToLower(p.Text), strings.ToLower(c.Keyword))
		density := float64(occurrences) / float64(wordCount) * 100
		details["keyword_density"] = round2(density)
		details["target_keyword"] = c.Keyword

		if density > contentMaxKeywordPct {
			score -= 20
			issues = Warning(issues, fmt.Sprintf("Keyword density is too high (%.1f%%). Risk of keyword stuffing", density))
			recs = append(recs, "Reduce keyword usage to avoid over-optimization")
		} else if density > 0 && density < 0.5 {
			issues = Info(issues, fmt.Sprintf("Keyword density is low (%.1f%%)", density))
		}
	}

	paragraphs := p.Doc.Find("p").Length()
	details["paragraph_count"] = paragraphs
	if paragraphs < 3 {
		score -= 10
		issues = Info(issues, "Few paragraphs detected. Content may not be well-structured")
		recs = append(recs, "Break content into multiple paragraphs for better readability")
	}

	lists := p.Doc.Find("ul,ol").Length()
	details["list_count"] = lists
	if lists == 0 && wordCount > 500 {
		recs = append(recs, "Consider adding bullet points or numbered lists to improve scannability")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
