package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"indexmd/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store keeps file summaries and run history for one source root
type Store struct {
	db     *sql.DB
	root   string
	dbPath string
}

// Ensure Store implements the cache ports
var (
	_ ports.FileCache = (*Store)(nil)
	_ ports.RunLedger = (*Store)(nil)
)

// Open opens the store of root in the XDG data directory
func Open(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	return OpenPath(DatabasePath(abs), abs)
}

// OpenPath opens the store at dbPath for root
func OpenPath(dbPath, root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; the engine is sequential anyway
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS file_summaries (
			path TEXT PRIMARY KEY,
			indexed_at INTEGER NOT NULL,
			summary_json TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			dirs_written INTEGER NOT NULL,
			dirs_skipped INTEGER NOT NULL,
			files_indexed INTEGER NOT NULL,
			files_cached INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, root: root, dbPath: dbPath}
	if s.NeedsReset() {
		if err := s.reset(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reset store: %w", err)
		}
	}
	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// NeedsReset returns true when the store was written by another schema
// version or belongs to another root
func (s *Store) NeedsReset() bool {
	var version, rootHash string

	s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	s.db.QueryRow("SELECT value FROM meta WHERE key = 'root_path_hash'").Scan(&rootHash)

	if version == "" && rootHash == "" {
		return false // fresh database
	}
	return version != schemaVersion || rootHash != hashRootPath(s.root)
}

func (s *Store) reset() error {
	_, err := s.db.Exec(`
		DELETE FROM file_summaries;
		DELETE FROM runs;
		DELETE FROM meta;
	`)
	return err
}

// DatabasePath returns the path for the SQLite database of root
func DatabasePath(root string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "indexmd", hashRootPath(root)+".db")
}

// hashRootPath returns a short hash of the root path
func hashRootPath(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and root path hash
func (s *Store) updateMeta() error {
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('root_path_hash', ?)`, hashRootPath(s.root))
	return err
}
