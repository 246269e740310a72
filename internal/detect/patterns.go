package detect

import (
	"regexp"
	"strings"
)

// Patterns holds the ordered, compiled matchers the detector scans with.
// Heading matchers are tried in order; keyword sets are bilingual
// (Korean/English) substring markers for the leaf block kinds.
type Patterns struct {
	Chapter  []*regexp.Regexp
	Subtopic []*regexp.Regexp
	Goals    []string
	Homework []string
	Review   []string
}

// Default returns the pattern set tuned for Korean/English textbooks.
func Default() Patterns {
	return Patterns{
		Chapter: []*regexp.Regexp{
			regexp.MustCompile(`^(?i)chapter\s+\d+`),
			regexp.MustCompile(`^(?i)unit\s+\d+`),
			regexp.MustCompile(`^제\s*\d+\s*[장과부]`),
			regexp.MustCompile(`^\d+\s*단원`),
			regexp.MustCompile(`^단원\s*\d+`),
			// Short all-caps line, e.g. a display heading.
			regexp.MustCompile(`^[A-Z][A-Z0-9 ,:\-/()']{3,48}$`),
		},
		Subtopic: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\.\d+\s+\S`),
			regexp.MustCompile(`^[①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮]\s*\S`),
			regexp.MustCompile(`^소주제\s*[:：]?\s*\S`),
			regexp.MustCompile(`^(?i)topic\s+\d+`),
		},
		Goals:    []string{"학습 목표", "학습목표", "learning goal"},
		Homework: []string{"숙제", "과제", "homework", "practice problems"},
		Review:   []string{"복습 문제", "확인 문제", "체크 테스트", "review question", "check test", "복습"},
	}
}

func matchAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func containsAny(keywords []string, line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
