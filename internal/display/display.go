// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, markdown reports, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"strconv"
	"strings"
)

// --- Analysis Categories ---

var categories = map[string]string{
	"title":            "Title Tag",
	"meta_description": "Meta Description",
	"url_structure":    "URL Structure",
	"headings":         "Heading Structure",
	"content":          "Content Quality",
	"images":           "Image Optimization",
	"links":            "Link Profile",
	"performance":      "Performance",
	"link_health":      "Link Health",
	"social":           "Social Tags",
	"security":         "Security",
	"mobile":           "Mobile Friendliness",
	"schema":           "Structured Data",
}

// Category returns the human-readable name for an analysis category.
// Unknown codes are returned as-is.
func Category(code string) string {
	if name, ok := categories[code]; ok {
		return name
	}
	return code
}

// CategoryWithCode returns "Title Tag (title)" format.
func CategoryWithCode(code string) string {
	if name, ok := categories[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Issue Severities ---

var severities = map[string]string{
	"critical": "Critical",
	"warning":  "Warning",
	"info":     "Info",
}

// Severity returns the human-readable name for an issue severity.
// "critical" -> "Critical".
func Severity(code string) string {
	if name, ok := severities[code]; ok {
		return name
	}
	return code
}

// --- Priority Buckets ---

var buckets = map[string]string{
	"high":   "High Priority",
	"medium": "Medium Priority",
	"low":    "Low Priority",
}

// Bucket returns the human-readable name for a priority bucket.
// "high" -> "High Priority".
func Bucket(code string) string {
	if name, ok := buckets[code]; ok {
		return name
	}
	return code
}

// --- Link Outcomes ---

var outcomes = map[string]string{
	"working":     "Working",
	"redirected":  "Redirected",
	"broken":      "Broken",
	"unreachable": "Unreachable",
}

// Outcome returns the human-readable name for a link probe status.
// "working" -> "Working".
func Outcome(code string) string {
	if name, ok := outcomes[code]; ok {
		return name
	}
	return code
}

// --- Grades ---

var grades = map[string]string{
	"A": "Excellent",
	"B": "Good",
	"C": "Fair",
	"D": "Poor",
	"F": "Failing",
}

var gradeDescriptions = map[string]string{
	"A": "Excellent. The page follows current best practices.",
	"B": "Good. A few targeted fixes would lift the score.",
	"C": "Fair. Several categories need attention.",
	"D": "Poor. Core on-page elements are missing or weak.",
	"F": "Failing. The page needs substantial rework.",
}

// Grade returns the one-word reading of a letter grade.
// "A" -> "Excellent".
func Grade(letter string) string {
	if name, ok := grades[letter]; ok {
		return name
	}
	return letter
}

// GradeWithLetter returns "Excellent (A)" format.
func GradeWithLetter(letter string) string {
	if name, ok := grades[letter]; ok {
		return name + " (" + letter + ")"
	}
	return letter
}

// GradeDescription returns the one-line summary for a letter grade.
func GradeDescription(letter string) string {
	if desc, ok := gradeDescriptions[letter]; ok {
		return desc
	}
	return letter
}

// --- Score Trends ---

// ScorePath converts a score series to a human-readable trend line.
// [50, 70, 90] -> "50 -> 70 -> 90" (with a real arrow).
func ScorePath(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " → ")
}
