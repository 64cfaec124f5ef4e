package store

import (
	"context"
	"errors"
)

var (
	ErrClosed   = errors.New("store: closed")
	ErrNotFound = errors.New("store: item not found")
)

// Store owns the ordered sequence of items. Every operation is a scan;
// no index is kept.
type Store interface {
	// Append adds item at the end of the sequence.
	Append(ctx context.Context, item Item) error
	// UpdateFirst overwrites the name of the first item with the given id,
	// or returns ErrNotFound.
	UpdateFirst(ctx context.Context, id int64, name string) error
	// RemoveAll drops every item with the given id and reports how many went.
	RemoveAll(ctx context.Context, id int64) (int, error)
	// Snapshot returns a copy of the sequence in insertion order.
	Snapshot(ctx context.Context) ([]Item, error)
	// MaxID returns the highest id held, or 0 when empty.
	MaxID(ctx context.Context) (int64, error)
	Close() error
}
