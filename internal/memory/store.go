package memory

import "context"

// Store defines the contract for preference record persistence.
type Store interface {
	// Load returns the stored record, or DefaultRecord when nothing has been
	// stored yet.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the stored record with r.
	Save(ctx context.Context, r *Record) error

	// Close releases any resources held by the store.
	Close() error
}
