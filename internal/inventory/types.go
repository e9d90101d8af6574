// Package inventory reads grocery purchases from a spreadsheet and selects
// the recent ones of a category for the planner.
package inventory

import (
	"context"
	"time"
)

// Column positions of the grocery sheet.
const (
	colDate = iota
	colItem
	colStore
	colCategory
	colQty
	colUnit
	colPrice
	colComment
	colDay
	colMonth
	colYear

	numColumns
)

// Columns is the fixed header of the grocery sheet.
var Columns = [numColumns]string{"DATE", "ITEM", "STORE", "CATEGORY", "QTY", "UNIT", "PRICE", "COMMENT", "DAY", "MONTH", "YEAR"}

// Row is one raw sheet row, cells as text.
type Row struct {
	Date     string
	Item     string
	Store    string
	Category string
	Quantity string
	Unit     string
	Price    string
	Comment  string
}

// Purchase is a row whose date was parsed.
type Purchase struct {
	Row
	Bought time.Time
}

// Source yields the raw rows of the grocery sheet, header included.
type Source interface {
	Rows(ctx context.Context) ([][]string, error)
}
