package plan

import "strings"

// BuildInput carries one file's detected units plus the context state the
// row builder needs.
type BuildInput struct {
	Units       []StructuralUnit
	NextSession int
	LastChapter string
	// Continues reports whether cur is a continuation of the chapter
	// prev (same title modulo part/volume suffixes). Nil disables
	// continuation merging.
	Continues func(prev, cur string) bool
}

type chapterGroup struct {
	title     string // display title; rewritten on continuation merge
	start     int
	end       int
	subtopics []StructuralUnit
	leaves    []StructuralUnit
}

// BuildRows produces one SessionRow per (chapter, subtopic) pairing. A
// chapter without subtopics yields exactly one row over the chapter's own
// page range. Session numbers are assigned sequentially from NextSession.
//
// When the first chapter continues LastChapter, its rows carry the
// previous chapter's title so they share one chapter identity across
// files, and no extra chapter-level row is emitted for the duplicate
// heading.
func BuildRows(in BuildInput) []SessionRow {
	groups := groupByChapter(in.Units)
	if len(groups) == 0 {
		return nil
	}

	if in.Continues != nil && in.LastChapter != "" && in.Continues(in.LastChapter, groups[0].title) {
		groups[0].title = in.LastChapter
	}

	session := in.NextSession
	var rows []SessionRow
	for _, g := range groups {
		if len(g.subtopics) == 0 {
			rows = append(rows, buildRow(session, g.title, "", g.start, g.end, g.leaves))
			session++
			continue
		}
		for _, sub := range g.subtopics {
			rows = append(rows, buildRow(session, g.title, sub.Text, sub.StartPage, sub.EndPage, g.leaves))
			session++
		}
	}
	return rows
}

func buildRow(session int, unit, subtopic string, start, end int, leaves []StructuralUnit) SessionRow {
	return SessionRow{
		Session:   session,
		Unit:      unit,
		Subtopic:  subtopic,
		Pages:     PageRange(start, end),
		Goals:     joinWithin(leaves, KindGoal, start, end),
		Homework:  joinWithin(leaves, KindHomework, start, end),
		CheckTest: joinWithin(leaves, KindReview, start, end),
	}
}

// joinWithin concatenates, in page order, the text of leaves of the given
// kind whose page range falls within [start, end].
func joinWithin(leaves []StructuralUnit, kind UnitKind, start, end int) string {
	var parts []string
	for _, u := range leaves {
		if u.Kind != kind {
			continue
		}
		if u.StartPage >= start && u.EndPage <= end {
			parts = append(parts, u.Text)
		}
	}
	return strings.Join(parts, " | ")
}

// groupByChapter splits the ordered unit sequence into chapter groups,
// keyed by chapter title. Title lookup rather than sequence order matters
// for units the detector backfilled onto a heading that appears later on
// the same or a following page.
func groupByChapter(units []StructuralUnit) []chapterGroup {
	var groups []chapterGroup
	index := make(map[string]int)
	ensure := func(title string, start, end int) int {
		if i, ok := index[title]; ok {
			return i
		}
		groups = append(groups, chapterGroup{title: title, start: start, end: end})
		index[title] = len(groups) - 1
		return len(groups) - 1
	}

	for _, u := range units {
		if u.Kind == KindChapter {
			i := ensure(u.Text, u.StartPage, u.EndPage)
			if u.StartPage < groups[i].start {
				groups[i].start = u.StartPage
			}
			if u.EndPage > groups[i].end {
				groups[i].end = u.EndPage
			}
			continue
		}
		i := ensure(u.Chapter, u.StartPage, u.EndPage)
		switch u.Kind {
		case KindSubtopic:
			groups[i].subtopics = append(groups[i].subtopics, u)
		default:
			groups[i].leaves = append(groups[i].leaves, u)
		}
		if u.EndPage > groups[i].end {
			groups[i].end = u.EndPage
		}
	}
	return groups
}
