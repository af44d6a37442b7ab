// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: state/store.go
// Summary: SQLite persistence of per-document view positions.

package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelzoom/viewport"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("state: store closed")

// View is the remembered position of one document.
type View struct {
	ZoomFactor       float64
	HorizontalOffset int
	VerticalOffset   int
	UpdatedAt        time.Time
}

// Capture reads the current view of a container.
func Capture(c *viewport.Container) View {
	return View{
		ZoomFactor:       c.ZoomFactor(),
		HorizontalOffset: c.HorizontalOffset(),
		VerticalOffset:   c.VerticalOffset(),
	}
}

// Apply restores v through ChangeView, so the zoom is clamped into the
// container's current bounds.
func (v View) Apply(c *viewport.Container) {
	c.ChangeView(viewport.ViewChange{
		HorizontalOffset: viewport.Ptr(float64(v.HorizontalOffset)),
		VerticalOffset:   viewport.Ptr(float64(v.VerticalOffset)),
		ZoomFactor:       viewport.Ptr(v.ZoomFactor),
	})
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS views (
    document TEXT PRIMARY KEY,
    zoom REAL NOT NULL,
    h_offset INTEGER NOT NULL,
    v_offset INTEGER NOT NULL,
    updated_at INTEGER NOT NULL        -- UnixNano
);
`

// Store keeps views keyed by document (usually an absolute path).
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("State: Opened view store %s", path)
	return &Store{db: db}, nil
}

// checkSchema records the schema version, or resets the views table when
// it was written by an incompatible version.
func checkSchema(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case current == schemaVersion:
		return nil
	}

	log.Printf("State: Schema version %d != %d, discarding stored views", current, schemaVersion)
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM views"); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE schema_version SET version = ?", schemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}

// Save stores v for doc, replacing any previous entry.
func (s *Store) Save(ctx context.Context, doc string, v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO views (document, zoom, h_offset, v_offset, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(document) DO UPDATE SET
    zoom = excluded.zoom,
    h_offset = excluded.h_offset,
    v_offset = excluded.v_offset,
    updated_at = excluded.updated_at`,
		doc, v.ZoomFactor, v.HorizontalOffset, v.VerticalOffset, v.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save view %q: %w", doc, err)
	}
	return nil
}

// Load returns the view stored for doc; ok is false when there is none.
func (s *Store) Load(ctx context.Context, doc string) (v View, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return View{}, false, ErrClosed
	}
	var updated int64
	err = s.db.QueryRowContext(ctx,
		"SELECT zoom, h_offset, v_offset, updated_at FROM views WHERE document = ?", doc,
	).Scan(&v.ZoomFactor, &v.HorizontalOffset, &v.VerticalOffset, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, false, nil
	}
	if err != nil {
		return View{}, false, fmt.Errorf("load view %q: %w", doc, err)
	}
	v.UpdatedAt = time.Unix(0, updated)
	return v, true, nil
}

// Forget removes the entry for doc.
func (s *Store) Forget(ctx context.Context, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM views WHERE document = ?", doc)
	return err
}

// Prune deletes entries not updated since before.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM views WHERE updated_at < ?", before.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
