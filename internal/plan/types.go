// Package plan holds the structural units detected in a textbook PDF and
// the session rows built from them.
package plan

import "fmt"

// UnitKind identifies a detected document element.
type UnitKind string

const (
	KindChapter  UnitKind = "chapter"
	KindSubtopic UnitKind = "subtopic"
	KindGoal     UnitKind = "learning_goal"
	KindHomework UnitKind = "homework"
	KindReview   UnitKind = "review_question"
)

// Rank orders kinds for page-range assignment: a unit ends the page
// before the next unit of equal-or-higher rank begins. Lower is higher.
func (k UnitKind) Rank() int {
	switch k {
	case KindChapter:
		return 0
	case KindSubtopic:
		return 1
	default:
		return 2
	}
}

// PageSource tags how a page's text was obtained.
type PageSource string

const (
	SourceDirect PageSource = "direct"
	SourceOCR    PageSource = "ocr"
)

// PageText is one page's extracted content.
type PageText struct {
	Page   int        `json:"page"`
	Text   string     `json:"text"`
	Source PageSource `json:"source"`
}

// StructuralUnit is a detected document element with a page range.
// Chapter is a back-reference by title, used only as a grouping key;
// the continuation merge may rename a chapter after units reference it,
// so it must never be a shared mutable object.
type StructuralUnit struct {
	Kind      UnitKind `json:"kind"`
	Text      string   `json:"text"`
	StartPage int      `json:"start_page"`
	EndPage   int      `json:"end_page"`
	Chapter   string   `json:"chapter,omitempty"`
}

// SessionRow is one exported row of the study plan. Date and Status are
// always left blank for the human user.
type SessionRow struct {
	Session   int    `json:"session"`
	Unit      string `json:"unit"`
	Subtopic  string `json:"subtopic"`
	Pages     string `json:"pages"`
	Goals     string `json:"goals"`
	Homework  string `json:"homework"`
	CheckTest string `json:"check_test"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// Columns returns the row as the nine spreadsheet cells, in header order.
func (r SessionRow) Columns() []string {
	return []string{
		fmt.Sprintf("%d", r.Session),
		r.Unit,
		r.Subtopic,
		r.Pages,
		r.Goals,
		r.Homework,
		r.CheckTest,
		r.Date,
		r.Status,
	}
}

// PageRange formats a page span as "s" or "s-e".
func PageRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
