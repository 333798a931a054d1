package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

// schemaRequiredFields lists the fields a JSON-LD object of a common
// type should carry to be eligible for rich results.
var schemaRequiredFields = map[string][]string{
	"Article":        {"headline", "author", "datePublished", "image"},
	"Product":        {"name", "image", "description", "offers"},
	"LocalBusiness":  {"name", "address", "telephone"},
	"Organization":   {"name", "url", "logo"},
	"Person":         {"name"},
	"WebSite":        {"name", "url"},
	"BreadcrumbList": {"itemListElement"},
	"FAQPage":        {"mainEntity"},
	"HowTo":          {"name", "step"},
	"Event":          {"name", "startDate", "location"},
	"Recipe":         {"name", "image", "author", "recipeIngredient"},
	"VideoObject":    {"name", "description", "thumbnailUrl", "uploadDate"},
}

type schemaInfo struct {
	Type          string   `json:"type"`
	Valid         bool     `json:"valid"`
	FieldsMissing []string `json:"fields_missing,omitempty"`
}

// Schema scores structured-data markup: JSON-LD blocks (parsed and
// validated against the required fields of common types) plus
// microdata and RDFa presence.
type Schema struct{}

func (Schema) Name() string { return "schema" }

func (Schema) Analyze(p *page.Page) Result {
	var issues []Issue
	var recs []string

	var schemas []schemaInfo
	invalidJSON := 0
	p.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		for _, obj := range decodeJSONLD(raw) {
			schemas = append(schemas, validateSchema(obj))
		}
		if !json.Valid([]byte(raw)) {
			invalidJSON++
		}
	})
	if invalidJSON > 0 {
		issues = Warning(issues, "Invalid JSON-LD found - could not parse")
	}

	microdata := p.Doc.Find("[itemscope]").Length()
	rdfa := p.Doc.Find("[typeof]").Length()
	hasAny := len(schemas) > 0 || microdata > 0 || rdfa > 0

	details := map[string]any{
		"has_structured_data": hasAny,
		"jsonld_count":        len(schemas),
		"microdata_count":     microdata,
		"rdfa_count":          rdfa,
		"jsonld_schemas":      schemas,
	}

	if !hasAny {
		issues = Critical(issues, "No structured data found on this page")
		recs = append(recs, "Add JSON-LD structured data to improve rich snippet eligibility")
		return Result{Score: 0, Issues: issues, Recommendations: recs, Details: details}
	}

	// Base 40 for any markup, 20 for JSON-LD specifically, up to 30
	// scaled by validity, 10 for schema variety.
	score := 40
	if len(schemas) > 0 {
		score += 20
		valid := 0
		for _, s := range schemas {
			if s.Valid {
				valid++
			} else if len(s.FieldsMissing) > 0 {
				issues = Warning(issues, fmt.Sprintf("%s: missing fields - %s", s.Type, strings.Join(s.FieldsMissing, ", ")))
			}
		}
		score += int(float64(valid) / float64(len(schemas)) * 30)
		if len(schemas) >= 2 {
			score += 10
		}
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}

// decodeJSONLD unwraps a JSON-LD script body into its top-level
// objects: a single object, an array of objects, or an @graph bundle.
func decodeJSONLD(raw string) []map[string]any {
	var single map[string]any
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if graph, ok := single["@graph"].([]any); ok {
			return onlyObjects(graph)
		}
		return []map[string]any{single}
	}
	var list []any
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return onlyObjects(list)
	}
	return nil
}

func onlyObjects(list []any) []map[string]any {
	var out []map[string]any
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func validateSchema(obj map[string]any) schemaInfo {
	typeName := ""
	switch t := obj["@type"].(type) {
	case string:
		typeName = t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				typeName = s
			}
		}
	}
	if typeName == "" {
		typeName = "Unknown"
	}

	info := schemaInfo{Type: typeName, Valid: true}
	for _, field := range schemaRequiredFields[typeName] {
		v, ok := obj[field]
		if !ok || v == nil || v == "" {
			info.FieldsMissing = append(info.FieldsMissing, field)
			info.Valid = false
		}
	}
	return info
}
