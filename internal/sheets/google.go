package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Google writes to the Google Sheets v4 API.
type Google struct {
	svc *sheetsapi.Service
}

// NewGoogle builds a client from a credentials file.
func NewGoogle(ctx context.Context, credentialsPath string) (*Google, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return &Google{svc: svc}, nil
}

// Create makes a new spreadsheet with the given title and writes the
// header row.
func (g *Google) Create(ctx context.Context, title string) (string, error) {
	ss, err := g.svc.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", wrapAPIError("create spreadsheet", err)
	}
	if err := g.Append(ctx, ss.SpreadsheetId, [][]string{Headers}); err != nil {
		return "", err
	}
	return ss.SpreadsheetId, nil
}

// Append adds the rows after the last non-empty row of the first sheet.
func (g *Google) Append(ctx context.Context, spreadsheetID string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	_, err := g.svc.Spreadsheets.Values.Append(spreadsheetID, "Sheet1!A1", &sheetsapi.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return wrapAPIError("append rows", err)
	}
	return nil
}

func (g *Google) URL(spreadsheetID string) string {
	return SpreadsheetURL(spreadsheetID)
}

func wrapAPIError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == 401 || gerr.Code == 403) {
		return fmt.Errorf("%w: %s: %v", ErrAuth, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
