package inventory

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads the grocery range from Google Sheets with a service account.
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetsSource authenticates with the service account key at credentialsFile
// using the read-only spreadsheets scope.
func NewSheetsSource(ctx context.Context, credentialsFile, spreadsheetID, readRange string) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// Rows fetches the configured range. Cells are rendered with their formatted value.
func (s *SheetsSource) Rows(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s range %s: %w", s.spreadsheetID, s.readRange, err)
	}
	return stringify(resp.Values), nil
}

func stringify(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprint(cell)
			}
		}
		out[i] = cells
	}
	return out
}
