package display

import "testing"

func TestCategory(t *testing.T) {
	cases := []struct {
		code, want string
	}{
		{"title", "Title Tag"},
		{"meta_description", "Meta Description"},
		{"url_structure", "URL Structure"},
		{"headings", "Heading Structure"},
		{"content", "Content Quality"},
		{"images", "Image Optimization"},
		{"links", "Link Profile"},
		{"performance", "Performance"},
		{"link_health", "Link Health"},
		{"social", "Social Tags"},
		{"security", "Security"},
		{"mobile", "Mobile Friendliness"},
		{"schema", "Structured Data"},
		{"unknown", "unknown"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Category(tc.code); got != tc.want {
			t.Errorf("Category(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestCategoryWithCode(t *testing.T) {
	if got := CategoryWithCode("title"); got != "Title Tag (title)" {
		t.Errorf("got %q", got)
	}
	if got := CategoryWithCode("unknown"); got != "unknown" {
		t.Errorf("got %q", got)
	}
}

func TestSeverity(t *testing.T) {
	cases := []struct {
		code, want string
	}{
		{"critical", "Critical"},
		{"warning", "Warning"},
		{"info", "Info"},
		{"fatal", "fatal"},
	}
	for _, tc := range cases {
		if got := Severity(tc.code); got != tc.want {
			t.Errorf("Severity(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestBucket(t *testing.T) {
	cases := []struct {
		code, want string
	}{
		{"high", "High Priority"},
		{"medium", "Medium Priority"},
		{"low", "Low Priority"},
		{"urgent", "urgent"},
	}
	for _, tc := range cases {
		if got := Bucket(tc.code); got != tc.want {
			t.Errorf("Bucket(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		code, want string
	}{
		{"working", "Working"},
		{"redirected", "Redirected"},
		{"broken", "Broken"},
		{"unreachable", "Unreachable"},
		{"flaky", "flaky"},
	}
	for _, tc := range cases {
		if got := Outcome(tc.code); got != tc.want {
			t.Errorf("Outcome(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestGrade(t *testing.T) {
	cases := []struct {
		letter, want string
	}{
		{"A", "Excellent"},
		{"B", "Good"},
		{"C", "Fair"},
		{"D", "Poor"},
		{"F", "Failing"},
		{"E", "E"},
	}
	for _, tc := range cases {
		if got := Grade(tc.letter); got != tc.want {
			t.Errorf("Grade(%q) = %q, want %q", tc.letter, got, tc.want)
		}
	}
}

func TestGradeWithLetter(t *testing.T) {
	if got := GradeWithLetter("A"); got != "Excellent (A)" {
		t.Errorf("got %q", got)
	}
	if got := GradeWithLetter("E"); got != "E" {
		t.Errorf("got %q", got)
	}
}

func TestGradeDescription(t *testing.T) {
	if got := GradeDescription("F"); got != "Failing. The page needs substantial rework." {
		t.Errorf("got %q", got)
	}
	if got := GradeDescription("E"); got != "E" {
		t.Errorf("got %q", got)
	}
}

func TestScorePath(t *testing.T) {
	got := ScorePath([]int{50, 70, 90})
	want := "50 → 70 → 90"
	if got != want {
		t.Errorf("ScorePath = %q, want %q", got, want)
	}
	if got := ScorePath(nil); got != "" {
		t.Errorf("ScorePath(nil) = %q, want empty", got)
	}
}
