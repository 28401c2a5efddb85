package datastore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/pagewatch/internal/models"
)

// State snapshot keys. The tail snapshot is overwritten each cycle; the
// terminal snapshot is written once at shutdown.
const (
	snapshotKeyTail     = "tail"
	snapshotKeyTerminal = "terminal"
)

// StateStore is the durable key-value sink for scrape state, backed by
// SQLite so snapshots survive process restarts.
type StateStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStateStore opens (creating if needed) the state database at the given
// path and ensures the schema exists.
func NewStateStore(dataSourceName string, logger zerolog.Logger) (*StateStore, error) {
	storeLogger := logger.With().Str("component", "StateStore").Logger()
	storeLogger.Info().Str("db_path", dataSourceName).Msg("Initializing state store")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	store := &StateStore{
		db:     dbInstance,
		logger: storeLogger,
	}

	if err := store.initSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *StateStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS watch_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize state schema")
		return err
	}
	return nil
}

// save upserts one snapshot under the given key.
func (s *StateStore) save(key string, snapshot *models.StateSnapshot) error {
	snapshot.SavedAt = time.Now()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal state snapshot: %w", err)
	}

	query := `INSERT INTO watch_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(query, key, string(data), snapshot.SavedAt); err != nil {
		return fmt.Errorf("failed to save state snapshot '%s': %w", key, err)
	}

	s.logger.Debug().
		Str("key", key).
		Int("result_count", len(snapshot.Results)).
		Msg("State snapshot saved")
	return nil
}

// SaveTail persists the rolling tail of recent results plus the last
// scrape timestamp. Called once per successful cycle.
func (s *StateStore) SaveTail(snapshot *models.StateSnapshot) error {
	return s.save(snapshotKeyTail, snapshot)
}

// SaveTerminal persists the full in-memory buffer as the distinct terminal
// record written at shutdown.
func (s *StateStore) SaveTerminal(snapshot *models.StateSnapshot) error {
	snapshot.Terminal = true
	return s.save(snapshotKeyTerminal, snapshot)
}

// LoadSnapshot reads a snapshot back by key ("tail" or "terminal").
// Returns sql.ErrNoRows when the key has never been saved.
func (s *StateStore) LoadSnapshot(key string) (*models.StateSnapshot, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM watch_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, err
	}

	var snapshot models.StateSnapshot
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state snapshot '%s': %w", key, err)
	}
	return &snapshot, nil
}
