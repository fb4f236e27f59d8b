//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	tri "github.com/rmera/tricontact"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveRun stores the run, replacing any earlier run with the same ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, structure, prot_contacts, lipid_contacts, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			structure = excluded.structure,
			prot_contacts = excluded.prot_contacts,
			lipid_contacts = excluded.lipid_contacts,
			created_at = excluded.created_at
	`, run.ID, run.Structure, run.ProtContacts, run.LipidContacts, run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pair_counts WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if run.Table != nil {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO pair_counts (run_id, anchor_residue, prot_residue, count)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range run.Table.Rows {
			if _, err := stmt.ExecContext(ctx, run.ID, r.Anchor, r.Prot, r.Count); err != nil {
				return fmt.Errorf("save pair %d-%d: %w", r.Anchor, r.Prot, err)
			}
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	run := Run{ID: id}
	var created string
	err = db.QueryRowContext(ctx, `
		SELECT structure, prot_contacts, lipid_contacts, created_at FROM runs WHERE id = ?
	`, id).Scan(&run.Structure, &run.ProtContacts, &run.LipidContacts, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT anchor_residue, prot_residue, count FROM pair_counts
		WHERE run_id = ? ORDER BY anchor_residue, prot_residue
	`, id)
	if err != nil {
		return Run{}, false, err
	}
	defer rows.Close()
	run.Table = &tri.Table{Rows: []tri.AggregateRow{}}
	for rows.Next() {
		var r tri.AggregateRow
		if err := rows.Scan(&r.Anchor, &r.Prot, &r.Count); err != nil {
			return Run{}, false, err
		}
		run.Table.Rows = append(run.Table.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			structure TEXT NOT NULL,
			prot_contacts TEXT NOT NULL,
			lipid_contacts TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS pair_counts (
			run_id TEXT NOT NULL REFERENCES runs(id),
			anchor_residue INTEGER NOT NULL,
			prot_residue INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, anchor_residue, prot_residue)
		);
	`)
	return err
}
