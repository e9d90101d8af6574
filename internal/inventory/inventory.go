package inventory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Inventory fetches the sheet and reports the recent purchases matching its filter.
type Inventory struct {
	source Source
	filter Filter
	now    func() time.Time
	logger *zap.Logger
}

// New creates an Inventory. A nil logger disables logging.
func New(source Source, filter Filter, logger *zap.Logger) *Inventory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inventory{source: source, filter: filter, now: time.Now, logger: logger}
}

// WithClock replaces the time source. It returns inv for chaining.
func (inv *Inventory) WithClock(now func() time.Time) *Inventory {
	inv.now = now
	return inv
}

// Filter returns the configured filter.
func (inv *Inventory) Filter() Filter {
	return inv.filter
}

// Purchases returns the filtered purchases and the number of data rows fetched.
func (inv *Inventory) Purchases(ctx context.Context) ([]Purchase, int, error) {
	values, err := inv.source.Rows(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch grocery data: %w", err)
	}
	rows := RowsFromValues(values)
	items := inv.filter.Apply(rows, inv.now())

	inv.logger.Info("grocery data filtered",
		zap.Int("rows", len(rows)),
		zap.Int("kept", len(items)),
		zap.Int("days", inv.filter.Days),
		zap.String("category", inv.filter.Category),
	)
	return items, len(rows), nil
}

// Recent returns the human-readable inventory, one purchase per line.
func (inv *Inventory) Recent(ctx context.Context) (string, error) {
	items, fetched, err := inv.Purchases(ctx)
	if err != nil {
		return "", err
	}
	if fetched == 0 {
		return NoDataMessage, nil
	}
	return inv.filter.Summarize(items), nil
}
