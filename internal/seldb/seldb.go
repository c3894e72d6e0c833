// Package seldb persists compiled selectors into a SQLite database for
// reverse lookup: given 4 selector bytes (or a 32-byte topic) seen on the
// wire, find which contract and definition they belong to.
package seldb

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/solbind/solbind/pkg/group"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS selectors (
	selector  TEXT NOT NULL,
	kind      TEXT NOT NULL,
	contract  TEXT NOT NULL,
	variant   TEXT NOT NULL,
	signature TEXT NOT NULL,
	run_id    TEXT NOT NULL REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_selectors_selector ON selectors(selector);
`

// Entry is one recorded selector.
type Entry struct {
	Selector  string // lowercase hex, no 0x prefix
	Kind      string
	Contract  string
	Variant   string
	Signature string
	RunID     string
}

// Store is the selector index database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (and if needed initializes) the index at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("index path is required")
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open selector index: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping selector index: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init selector index: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error { return s.sqlDB.Close() }

// Record stores every member of every contract under a fresh run id and
// returns that id. Signatures come from each member's codec.
func (s *Store) Record(contracts []*group.Contract) (string, error) {
	runID := uuid.NewString()

	tx, err := s.sqlDB.Begin()
	if err != nil {
		return "", fmt.Errorf("record selectors: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		"INSERT INTO runs (id, created_at) VALUES (?, ?)",
		runID, time.Now().UTC().UnixMilli(),
	); err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	for _, c := range contracts {
		for _, kind := range []group.Kind{group.KindCall, group.KindError, group.KindEvent} {
			for _, m := range c.MembersOf(kind) {
				if err := insertMember(tx, runID, c.Name, m); err != nil {
					return "", err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("record selectors: %w", err)
	}
	return runID, nil
}

func insertMember(tx *sql.Tx, runID, contract string, m group.Member) error {
	sig := ""
	if sp, ok := m.Codec.(interface{ Signature() string }); ok {
		sig = sp.Signature()
	}
	_, err := tx.Exec(
		"INSERT INTO selectors (selector, kind, contract, variant, signature, run_id) VALUES (?, ?, ?, ?, ?, ?)",
		hex.EncodeToString(m.Selector), m.Kind.String(), contract, m.VariantID, sig, runID,
	)
	if err != nil {
		return fmt.Errorf("record selector for %s.%s: %w", contract, m.VariantID, err)
	}
	return nil
}

// Lookup returns all entries recorded for a selector, newest run first.
// sel is hex with or without a 0x prefix.
func (s *Store) Lookup(sel string) ([]Entry, error) {
	sel = strings.ToLower(strings.TrimPrefix(sel, "0x"))
	if _, err := hex.DecodeString(sel); err != nil {
		return nil, fmt.Errorf("bad selector %q: %w", sel, err)
	}

	rows, err := s.sqlDB.Query(`
		SELECT s.selector, s.kind, s.contract, s.variant, s.signature, s.run_id
		FROM selectors s JOIN runs r ON r.id = s.run_id
		WHERE s.selector = ?
		ORDER BY r.created_at DESC`, sel)
	if err != nil {
		return nil, fmt.Errorf("lookup selector: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Selector, &e.Kind, &e.Contract, &e.Variant, &e.Signature, &e.RunID); err != nil {
			return nil, fmt.Errorf("scan selector row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
