package analyzer

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

var genericImageNames = []string{"img", "image", "photo", "picture", "untitled", "dsc", "screenshot"}

type imageInfo struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Filename string `json:"filename"`
	HasAlt   bool   `json:"has_alt"`
	Lazy     bool   `json:"lazy"`
	HasDims  bool   `json:"has_dimensions"`
}

// Images scores the <img> inventory: alt coverage, sizing attributes,
// lazy loading and filename quality.
type Images struct{}

func (Images) Name() string { return "images" }

func (Images) Analyze(p *page.Page) Result {
	var images []imageInfo
	p.Doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		alt, hasAlt := s.Attr("alt")
		_, hasWidth := s.Attr("width")
		_, hasHeight := s.Attr("height")
		images = append(images, imageInfo{
			Src:      src,
			Alt:      alt,
			Filename: imageFilename(src),
			HasAlt:   hasAlt,
			Lazy:     s.AttrOr("loading", "") == "lazy",
			HasDims:  hasWidth && hasHeight,
		})
	})

	if len(images) == 0 {
		return Result{
			Score:           70, // no images is a missed opportunity, not a defect
			Issues:          Info(nil, "No images found on the page"),
			Recommendations: []string{"Consider adding relevant images to improve engagement"},
			Details:         map[string]any{"total_images": 0},
		}
	}

	score := 100
	var issues []Issue
	var recs []string

	var withAlt, withoutAlt, emptyAlt, lazy, withDims, modern int
	var poorNames int
	for _, img := range images {
		switch {
		case !img.HasAlt:
			withoutAlt++
		case img.Alt == "":
			emptyAlt++
		default:
			withAlt++
		}
		if img.Lazy {
			lazy++
		}
		if img.HasDims {
			withDims++
		}
		name := strings.ToLower(img.Filename)
		if strings.HasSuffix(name, ".webp") || strings.HasSuffix(name, ".avif") {
			modern++
		}
		for _, generic := range genericImageNames {
			if strings.Contains(name, generic) {
				poorNames++
				break
			}
		}
	}

	details := map[string]any{
		"total_images":        len(images),
		"with_alt":            withAlt,
		"without_alt":         withoutAlt,
		"empty_alt":           emptyAlt,
		"lazy_loaded":         lazy,
		"with_dimensions":     withDims,
		"modern_format_count": modern,
	}
	if len(images) > 10 {
		details["images"] = images[:10]
	} else {
		details["images"] = images
	}

	if withoutAlt > 0 {
		missingPct := float64(withoutAlt) / float64(len(images)) * 100
		score -= int(math.Round(math.Min(40, missingPct*0.5)))
		issues = Warning(issues, fmt.Sprintf("%d images missing alt text", withoutAlt))
		recs = append(recs, "Add descriptive alt text to all images for accessibility and SEO")
	}

	if lazy < len(images) && len(images) > 3 {
		recs = append(recs, `Consider adding loading="lazy" to below-the-fold images`)
	}

	if withDims < len(images) {
		score -= 10
		issues = Info(issues, "Some images missing width/height attributes")
		recs = append(recs, "Add width and height attributes to prevent layout shift")
	}

	if poorNames > 0 {
		score -= 5
		details["poor_filenames"] = poorNames
		issues = Info(issues, fmt.Sprintf("%d images have non-descriptive filenames", poorNames))
		recs = append(recs, "Use descriptive, keyword-rich filenames for images")
	}

	if modern == 0 {
		recs = append(recs, "Consider using modern image formats (WebP, AVIF) for better compression")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}

func imageFilename(src string) string {
	if src == "" {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil || u.Path == "" {
		return ""
	}
	parts := strings.Split(u.Path, "/")
	return parts[len(parts)-1]
}
