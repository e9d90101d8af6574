package inventory

import (
	"fmt"
	"strings"
	"time"
)

// Defaults of the freshness filter.
const (
	DefaultDays     = 14
	DefaultCategory = "veg"
)

// NoDataMessage is returned when the sheet holds no rows at all.
const NoDataMessage = "No data found in the spreadsheet."

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// ParseDate parses a sheet date cell in loc. Slash dates are month first.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RowsFromValues converts sheet values to rows. The first row is a header and
// is skipped; short rows are padded with empty cells.
func RowsFromValues(values [][]string) []Row {
	if len(values) <= 1 {
		return nil
	}
	rows := make([]Row, 0, len(values)-1)
	for _, v := range values[1:] {
		cells := make([]string, numColumns)
		copy(cells, v)
		rows = append(rows, Row{
			Date:     cells[colDate],
			Item:     cells[colItem],
			Store:    cells[colStore],
			Category: cells[colCategory],
			Quantity: cells[colQty],
			Unit:     cells[colUnit],
			Price:    cells[colPrice],
			Comment:  cells[colComment],
		})
	}
	return rows
}

// Filter selects purchases of a category bought within the trailing window.
type Filter struct {
	Days     int
	Category string
}

// DefaultFilter returns the 14 day vegetable filter.
func DefaultFilter() Filter {
	return Filter{Days: DefaultDays, Category: DefaultCategory}
}

// Apply returns the rows dated on or after now minus f.Days whose category
// contains f.Category, ignoring case. Rows with unparseable dates are dropped.
func (f Filter) Apply(rows []Row, now time.Time) []Purchase {
	cutoff := now.AddDate(0, 0, -f.Days)
	needle := strings.ToLower(f.Category)

	var out []Purchase
	for _, r := range rows {
		bought, ok := ParseDate(r.Date, now.Location())
		if !ok || bought.Before(cutoff) {
			continue
		}
		if !strings.Contains(strings.ToLower(r.Category), needle) {
			continue
		}
		out = append(out, Purchase{Row: r, Bought: bought})
	}
	return out
}

// EmptyMessage is the sentinel shown when nothing matched.
func (f Filter) EmptyMessage() string {
	return fmt.Sprintf("No items in category %q found bought in the last %d days. Check that the CATEGORY column matches %q.",
		f.Category, f.Days, f.Category)
}

// Line renders a purchase as "<item> (<qty> <unit>) bought on <date>".
func (p Purchase) Line() string {
	return fmt.Sprintf("%s (%s %s) bought on %s", p.Item, p.Quantity, p.Unit, p.Bought.Format("2006-01-02"))
}

// Summarize renders one line per purchase, or the sentinel when there are none.
func (f Filter) Summarize(items []Purchase) string {
	if len(items) == 0 {
		return f.EmptyMessage()
	}
	lines := make([]string, len(items))
	for i, p := range items {
		lines[i] = p.Line()
	}
	return strings.Join(lines, "\n")
}
