package services

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAppender appends rows to a Google Sheets spreadsheet
type SheetsAppender struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
}

// NewSheetsAppender creates an appender authenticated with a service-account credential file
func NewSheetsAppender(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsAppender, error) {
	return newSheetsAppender(ctx, spreadsheetID,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func newSheetsAppender(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsAppender, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsAppender{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}, nil
}

// AppendRow appends row after the last row of sheetRange. There is no retry.
func (a *SheetsAppender) AppendRow(ctx context.Context, sheetRange string, row []interface{}) error {
	body := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row},
	}
	_, err := a.values.Append(a.spreadsheetID, sheetRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append %s: %w", sheetRange, err)
	}
	return nil
}
