// Package sheets writes session rows to a spreadsheet backend.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

// ErrAuth marks an authentication or authorization failure at the sink.
// Extraction and caching have already succeeded when this surfaces; the
// rows are kept and a later run can re-target the sink.
var ErrAuth = errors.New("spreadsheet authentication failed")

// Headers is the fixed bilingual header row for the study plan.
var Headers = []string{
	"차수 (Session)",
	"대단원 (Major Unit)",
	"소주제/테마 (Subtopic/Theme)",
	"페이지 범위 (Page Range)",
	"학습 목표 및 튜터 코칭 포인트 (Learning Goals and Tutor Coaching Points)",
	"숙제 (Homework)",
	"체크 테스트 (Check Test)",
	"날짜 (Date)",
	"완료 상태 (Completion Status)",
}

// Sink accepts ordered rows. Create makes a new spreadsheet with the
// header row and returns its identifier; Append adds rows to an existing
// one.
type Sink interface {
	Create(ctx context.Context, title string) (string, error)
	Append(ctx context.Context, spreadsheetID string, rows [][]string) error
	URL(spreadsheetID string) string
}

// SpreadsheetURL builds the canonical edit URL for an identifier.
func SpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID)
}
