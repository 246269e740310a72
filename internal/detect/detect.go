// Package detect scans extracted page texts for structural markers and
// turns them into typed units with page ranges.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/moosang1125-png/dangwan/internal/plan"
)

// Detect scans the full ordered page sequence of one file and returns the
// detected structural units in page order. When no chapter heading is
// found, a synthetic chapter named after the file (without extension) is
// prepended so downstream grouping always has a key.
func Detect(pages []plan.PageText, filename string, pats Patterns) []plan.StructuralUnit {
	if len(pages) == 0 {
		return nil
	}
	totalPages := pages[len(pages)-1].Page

	var units []plan.StructuralUnit
	for _, pg := range pages {
		units = append(units, scanPage(pg, pats)...)
	}

	if !hasChapter(units) {
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		units = append([]plan.StructuralUnit{{
			Kind:      plan.KindChapter,
			Text:      base,
			StartPage: 1,
		}}, units...)
	}

	assignChapters(units)
	assignEndPages(units, totalPages)
	return units
}

// scanPage classifies each line of one page. When a line matches several
// marker types it is owned by the highest-priority kind:
// chapter > subtopic > learning goal > homework > review question.
func scanPage(pg plan.PageText, pats Patterns) []plan.StructuralUnit {
	lines := strings.Split(pg.Text, "\n")
	var units []plan.StructuralUnit
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		switch {
		case matchAny(pats.Chapter, line):
			units = append(units, plan.StructuralUnit{Kind: plan.KindChapter, Text: line, StartPage: pg.Page})
		case matchAny(pats.Subtopic, line):
			units = append(units, plan.StructuralUnit{Kind: plan.KindSubtopic, Text: line, StartPage: pg.Page})
		case containsAny(pats.Goals, line):
			text, next := captureBlock(lines, i, pats)
			units = append(units, plan.StructuralUnit{Kind: plan.KindGoal, Text: text, StartPage: pg.Page})
			i = next
		case containsAny(pats.Homework, line):
			text, next := captureBlock(lines, i, pats)
			units = append(units, plan.StructuralUnit{Kind: plan.KindHomework, Text: text, StartPage: pg.Page})
			i = next
		case containsAny(pats.Review, line):
			text, next := captureBlock(lines, i, pats)
			units = append(units, plan.StructuralUnit{Kind: plan.KindReview, Text: text, StartPage: pg.Page})
			i = next
		}
	}
	return units
}

// captureBlock collects the marker line plus following lines until a
// blank line or the next marker, returning the joined block text and the
// index of the last consumed line. Blocks do not cross page boundaries.
func captureBlock(lines []string, start int, pats Patterns) (string, int) {
	parts := []string{strings.TrimSpace(lines[start])}
	i := start
	for i+1 < len(lines) {
		next := strings.TrimSpace(lines[i+1])
		if next == "" || isMarker(next, pats) {
			break
		}
		parts = append(parts, next)
		i++
	}
	return strings.Join(parts, " "), i
}

func isMarker(line string, pats Patterns) bool {
	return matchAny(pats.Chapter, line) ||
		matchAny(pats.Subtopic, line) ||
		containsAny(pats.Goals, line) ||
		containsAny(pats.Homework, line) ||
		containsAny(pats.Review, line)
}

func hasChapter(units []plan.StructuralUnit) bool {
	for _, u := range units {
		if u.Kind == plan.KindChapter {
			return true
		}
	}
	return false
}

// assignChapters sets each unit's chapter key to the most recent chapter
// heading. Units detected before the first heading backfill onto it.
func assignChapters(units []plan.StructuralUnit) {
	first := ""
	for _, u := range units {
		if u.Kind == plan.KindChapter {
			first = u.Text
			break
		}
	}
	current := first
	for i := range units {
		if units[i].Kind == plan.KindChapter {
			current = units[i].Text
			units[i].Chapter = ""
			continue
		}
		units[i].Chapter = current
	}
}

// assignEndPages closes every unit the page before the next unit of
// equal-or-higher rank begins, clamped to its own start page. The final
// unit of each rank runs to the file's last page.
func assignEndPages(units []plan.StructuralUnit, totalPages int) {
	for i := range units {
		end := totalPages
		for j := i + 1; j < len(units); j++ {
			if units[j].Kind.Rank() <= units[i].Kind.Rank() {
				end = units[j].StartPage - 1
				break
			}
		}
		if end < units[i].StartPage {
			end = units[i].StartPage
		}
		units[i].EndPage = end
	}
}
