package state

import (
	"regexp"
	"strings"
)

// ContinuationPatterns strips trailing part/volume markers from chapter
// titles before comparing them across files. The set is heuristic and
// deliberately replaceable: callers may append their own patterns when a
// textbook series uses a marker not covered here.
var ContinuationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[-–—:]?\s*part\s+\d+$`),
	regexp.MustCompile(`(?i)\s*\(\s*part\s+\d+\s*\)$`),
	regexp.MustCompile(`\s*\d+\s*부$`),
	regexp.MustCompile(`\s*\(\s*속\s*\)$`),
	regexp.MustCompile(`(?i)\s*\(\s*continued\s*\)$`),
	regexp.MustCompile(`\s+(?:II|III|IV|V|VI|VII|VIII|IX|X)$`),
}

// NormalizeChapterTitle returns the title with any trailing part/volume
// marker removed and whitespace collapsed.
func NormalizeChapterTitle(title string) string {
	t := strings.TrimSpace(title)
	for _, re := range ContinuationPatterns {
		if loc := re.FindStringIndex(t); loc != nil {
			t = strings.TrimSpace(t[:loc[0]])
			break
		}
	}
	return strings.Join(strings.Fields(t), " ")
}

// Continues reports whether cur continues the chapter prev: the titles
// are identical, or their normalized bases match case-insensitively and
// at least one of them carried a part/volume suffix.
func Continues(prev, cur string) bool {
	prev = strings.TrimSpace(prev)
	cur = strings.TrimSpace(cur)
	if prev == "" || cur == "" {
		return false
	}
	if strings.EqualFold(prev, cur) {
		return true
	}
	np := NormalizeChapterTitle(prev)
	nc := NormalizeChapterTitle(cur)
	if np == "" || nc == "" {
		return false
	}
	stripped := np != prev || nc != cur
	return stripped && strings.EqualFold(np, nc)
}
