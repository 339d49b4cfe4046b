package journey

import (
	"context"
	"fmt"
	"io"
)

// Store is the session's journey: an append-only list of entries, newest first.
// Nothing is ever updated or removed.
type Store interface {
	// Append puts e at the front of the journey.
	Append(ctx context.Context, e Entry) error
	// All returns a snapshot of every entry, newest first.
	All(ctx context.Context) ([]Entry, error)
	// Len returns the number of entries.
	Len(ctx context.Context) (int, error)
}

// Open returns an empty store for backend ("memory" or "sqlite"). An empty
// backend means memory.
func Open(ctx context.Context, backend string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx)
	default:
		return nil, fmt.Errorf("journey: unknown store backend %q", backend)
	}
}

// Close releases st if it holds resources. Its entries are gone afterwards.
func Close(st Store) error {
	if c, ok := st.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
