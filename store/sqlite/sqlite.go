/*
Package sqlite provides a SQLite-backed implementation of payroll.RuleSetStore.

PURPOSE:
  Persists named rule sets so the API can compute under an alternative
  week interpretation (or adjusted statutory parameters) selected by ID.
  Only configuration is stored. Shifts and calculation results are never
  written to the database.

INTERFACES IMPLEMENTED:
  payroll.RuleSetStore: Rule-set persistence

KEY TABLES:
  rule_sets: Rule-set definitions (versioned), rules held as JSON in the
             factory.RuleSetJSON format

VERSIONING:
  Saving an existing ID is an upsert: the JSON and name are replaced,
  version is incremented and created_at is preserved.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. ":memory:" databases are pinned to a
  single connection so every query sees the same schema.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./payroll.db")
  if err != nil {
      return err
  }
  defer store.Close()

  rules, err := payroll.ResolveRules(ctx, store, "iso-week", "statutory")

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - payroll/store.go: Interface definition
  - payroll/store/memory.go: In-memory implementation for testing
  - factory/rules.go: JSON format of config_json
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/logger"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.RuleSetStore using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.RulesFactory
	now     func() time.Time
}

var _ payroll.RuleSetStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{
		db:      db,
		factory: factory.NewRulesFactory(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Named("sqlite").Debug().Str("path", dbPath).Msg("schema migrated")

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rule_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RULE SET STORE
// =============================================================================

// SaveRuleSet upserts a rule set and returns the stored record.
func (s *Store) SaveRuleSet(ctx context.Context, rs payroll.RuleSet) (payroll.RuleSet, error) {
	configJSON, err := s.factory.Marshal(rs)
	if err != nil {
		return payroll.RuleSet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rule_sets (id, name, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = rule_sets.version + 1,
			updated_at = excluded.updated_at
	`

	now := s.now().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, string(rs.ID), rs.Name, configJSON, now, now); err != nil {
		return payroll.RuleSet{}, fmt.Errorf("failed to save rule set %q: %w", rs.ID, err)
	}

	stored, err := s.getRuleSet(ctx, rs.ID)
	if err != nil {
		return payroll.RuleSet{}, err
	}
	if stored == nil {
		return payroll.RuleSet{}, fmt.Errorf("rule set %q vanished after save", rs.ID)
	}
	return *stored, nil
}

// GetRuleSet retrieves a rule set by ID. Returns (nil, nil) when absent.
func (s *Store) GetRuleSet(ctx context.Context, id payroll.RuleSetID) (*payroll.RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRuleSet(ctx, id)
}

func (s *Store) getRuleSet(ctx context.Context, id payroll.RuleSetID) (*payroll.RuleSet, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM rule_sets WHERE id = ?",
		string(id),
	)
	rs, err := s.scanRuleSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListRuleSets returns all rule sets ordered by ID.
func (s *Store) ListRuleSets(ctx context.Context) ([]payroll.RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM rule_sets ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.RuleSet
	for rows.Next() {
		rs, err := s.scanRuleSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rs)
	}
	return out, rows.Err()
}

// DeleteRuleSet removes a rule set. Deleting an unknown ID is not an error.
func (s *Store) DeleteRuleSet(ctx context.Context, id payroll.RuleSetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM rule_sets WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logger.Named("sqlite").Debug().Str("rule_set", string(id)).Msg("rule set deleted")
	}
	return nil
}

// SeedRuleSets saves each rule set whose ID is not stored yet. Existing
// rows are left untouched so operator edits survive restarts.
func (s *Store) SeedRuleSets(ctx context.Context, sets []payroll.RuleSet) (int, error) {
	seeded := 0
	for _, rs := range sets {
		existing, err := s.GetRuleSet(ctx, rs.ID)
		if err != nil {
			return seeded, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.SaveRuleSet(ctx, rs); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM rule_sets")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRuleSet(row scanner) (*payroll.RuleSet, error) {
	var id, name, configJSON, createdAt, updatedAt string
	var version int
	if err := row.Scan(&id, &name, &configJSON, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	rs, err := s.factory.ParseRuleSet(configJSON)
	if err != nil {
		return nil, fmt.Errorf("rule set %q: %w", id, err)
	}
	rs.ID = payroll.RuleSetID(id)
	rs.Name = name
	rs.Version = version
	rs.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rs.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rs, nil
}
