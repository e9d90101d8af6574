package memory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Preferences applies the record operations on top of a Store. Every mutating
// call is a single load-modify-save cycle.
type Preferences struct {
	store  Store
	now    func() time.Time
	days   int
	logger *zap.Logger
}

// Option configures Preferences.
type Option func(*Preferences)

// WithClock overrides the time source used for dating and pruning choices.
func WithClock(now func() time.Time) Option {
	return func(p *Preferences) { p.now = now }
}

// WithRetention overrides the history retention window in days.
func WithRetention(days int) Option {
	return func(p *Preferences) { p.days = days }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Preferences) { p.logger = l }
}

// NewPreferences creates a Preferences service backed by store.
func NewPreferences(store Store, opts ...Option) *Preferences {
	p := &Preferences{
		store:  store,
		now:    time.Now,
		days:   RetentionDays,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now returns the current time of the service clock.
func (p *Preferences) Now() time.Time {
	return p.now()
}

// Retention returns the history retention window in days.
func (p *Preferences) Retention() int {
	return p.days
}

// Load returns the stored record.
func (p *Preferences) Load(ctx context.Context) (*Record, error) {
	r, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return r, nil
}

// Save persists r as is.
func (p *Preferences) Save(ctx context.Context, r *Record) error {
	if err := p.store.Save(ctx, r); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// AddFavorite adds name to the favorites. Nothing is written when it is already present.
func (p *Preferences) AddFavorite(ctx context.Context, name string) (bool, error) {
	return p.update(ctx, "favorite added", name, func(r *Record) (bool, error) { return r.AddFavorite(name) })
}

// AddDislike adds name to the dislikes. Nothing is written when it is already present.
func (p *Preferences) AddDislike(ctx context.Context, name string) (bool, error) {
	return p.update(ctx, "dislike added", name, func(r *Record) (bool, error) { return r.AddDislike(name) })
}

// RemoveFavorite deletes name from the favorites.
func (p *Preferences) RemoveFavorite(ctx context.Context, name string) (bool, error) {
	return p.update(ctx, "favorite removed", name, func(r *Record) (bool, error) { return r.RemoveFavorite(name), nil })
}

// RemoveDislike deletes name from the dislikes.
func (p *Preferences) RemoveDislike(ctx context.Context, name string) (bool, error) {
	return p.update(ctx, "dislike removed", name, func(r *Record) (bool, error) { return r.RemoveDislike(name), nil })
}

// RecordChoice appends {name, date} to the history, prunes entries older than
// the retention window and persists the record.
func (p *Preferences) RecordChoice(ctx context.Context, name string, date time.Time) (*Record, error) {
	r, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.AppendChoice(name, date); err != nil {
		return nil, err
	}
	pruned := r.Prune(p.now(), p.days)
	if err := p.Save(ctx, r); err != nil {
		return nil, err
	}

	p.logger.Info("meal choice recorded",
		zap.String("meal", name),
		zap.String("date", date.Format(DateLayout)),
		zap.Int("pruned", pruned),
		zap.Int("history", len(r.History)),
	)
	return r, nil
}

func (p *Preferences) update(ctx context.Context, msg, name string, fn func(*Record) (bool, error)) (bool, error) {
	r, err := p.Load(ctx)
	if err != nil {
		return false, err
	}
	changed, err := fn(r)
	if err != nil || !changed {
		return false, err
	}
	if err := p.Save(ctx, r); err != nil {
		return false, err
	}
	p.logger.Info(msg, zap.String("name", name))
	return true, nil
}
