package inventory

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads the grocery sheet from a local .xlsx export.
type WorkbookSource struct {
	path  string
	sheet string
}

// NewWorkbookSource returns a source for path. An empty sheet selects the first one.
func NewWorkbookSource(path, sheet string) *WorkbookSource {
	return &WorkbookSource{path: path, sheet: sheet}
}

// Rows opens the workbook and returns the rows of the sheet.
func (w *WorkbookSource) Rows(ctx context.Context) ([][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
