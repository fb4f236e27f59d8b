// Package store keeps aggregated contact tables across runs, so results of
// different trajectories or replicas can be compared later.
package store

import (
	"context"
	"fmt"
	"time"

	tri "github.com/rmera/tricontact"
)

// Run is one execution of the pipeline: the inputs it used and the table it produced.
type Run struct {
	ID            string
	Structure     string
	ProtContacts  string
	LipidContacts string
	CreatedAt     time.Time
	Table         *tri.Table
}

type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]string, error)
}

// NewStore returns a store of the given kind: "" or "memory" for an in-memory store,
// "sqlite" for a SQLite database in sqlitePath (only in builds with the sqlite tag).
// The store still has to be initialized.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes the store if it has a Close method.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
