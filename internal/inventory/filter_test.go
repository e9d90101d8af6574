package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC)

func ago(days int) string {
	return now.AddDate(0, 0, -days).Format("2006-01-02")
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-06-03", "2025/06/03", "06/03/2025", "6/3/2025", "Jun 3, 2025", "June 3, 2025", "3 Jun 2025", "03-Jun-2025", " 2025-06-03 "} {
		got, ok := ParseDate(in, time.UTC)
		if assert.True(t, ok, in) {
			assert.Equal(t, want, got, in)
		}
	}

	for _, in := range []string{"", "soon", "2025-13-40", "32/01/2025"} {
		_, ok := ParseDate(in, time.UTC)
		assert.False(t, ok, in)
	}
}

func TestRowsFromValues(t *testing.T) {
	values := [][]string{
		Columns[:],
		{"2025-06-01", "Spinach", "Market", "Vegetable", "2", "bunch", "3.50", "fresh", "1", "6", "2025", "extra"},
		{"2025-06-02", "Milk"},
	}

	rows := RowsFromValues(values)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		Date: "2025-06-01", Item: "Spinach", Store: "Market", Category: "Vegetable",
		Quantity: "2", Unit: "bunch", Price: "3.50", Comment: "fresh",
	}, rows[0])
	assert.Equal(t, "Milk", rows[1].Item)
	assert.Empty(t, rows[1].Category)

	assert.Nil(t, RowsFromValues(nil))
	assert.Nil(t, RowsFromValues([][]string{Columns[:]}))
}

func TestFilter_Window(t *testing.T) {
	rows := []Row{
		{Date: ago(20), Item: "Old Carrots", Category: "Vegetable", Quantity: "1", Unit: "kg"},
		{Date: ago(5), Item: "Tomatoes", Category: "Vegetable", Quantity: "500", Unit: "g"},
	}

	got := DefaultFilter().Apply(rows, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Tomatoes", got[0].Item)
}

func TestFilter_ExcludesEverythingOutsideWindow(t *testing.T) {
	var rows []Row
	for d := 0; d <= 40; d++ {
		rows = append(rows, Row{Date: ago(d), Item: "x", Category: "veg"})
	}

	cutoff := now.AddDate(0, 0, -DefaultDays)
	for _, p := range DefaultFilter().Apply(rows, now) {
		assert.False(t, p.Bought.Before(cutoff), "purchase on %s is outside the window", p.Bought)
	}
	assert.Len(t, DefaultFilter().Apply(rows, now), DefaultDays)
}

func TestFilter_Category(t *testing.T) {
	rows := []Row{
		{Date: ago(1), Item: "Okra", Category: "Fresh VEGETABLES"},
		{Date: ago(1), Item: "Peas", Category: "veggies"},
		{Date: ago(1), Item: "Chicken", Category: "Meat"},
		{Date: ago(1), Item: "Rice", Category: ""},
	}

	got := DefaultFilter().Apply(rows, now)
	var items []string
	for _, p := range got {
		items = append(items, p.Item)
		assert.Contains(t, strings.ToLower(p.Category), "veg")
	}
	assert.Equal(t, []string{"Okra", "Peas"}, items)

	meat := Filter{Days: 14, Category: "MEAT"}.Apply(rows, now)
	require.Len(t, meat, 1)
	assert.Equal(t, "Chicken", meat[0].Item)
}

func TestFilter_DropsUnparseableDates(t *testing.T) {
	rows := []Row{
		{Date: "", Item: "Blank", Category: "Veg"},
		{Date: "last week", Item: "Vague", Category: "Veg"},
		{Date: ago(2), Item: "Beans", Category: "Veg"},
	}

	got := DefaultFilter().Apply(rows, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Beans", got[0].Item)
}

func TestSummarize(t *testing.T) {
	f := DefaultFilter()
	items := f.Apply([]Row{
		{Date: "2025-06-18", Item: "Spinach", Category: "Vegetable", Quantity: "2", Unit: "bunch"},
		{Date: "2025-06-19", Item: "Okra", Category: "Vegetable", Quantity: "250", Unit: "g"},
	}, now)

	assert.Equal(t, "Spinach (2 bunch) bought on 2025-06-18\nOkra (250 g) bought on 2025-06-19", f.Summarize(items))

	empty := f.Summarize(nil)
	assert.Equal(t, f.EmptyMessage(), empty)
	assert.Contains(t, empty, "14 days")
	assert.Contains(t, empty, `"veg"`)
}
