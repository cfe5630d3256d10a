package world

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB opens (creating if needed) the chunk database at path.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open chunk database: %w", err)
	}
	// modernc sqlite serializes writers anyway; one connection keeps
	// the WAL bookkeeping simple.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chunks (
	cx     INTEGER NOT NULL,
	cz     INTEGER NOT NULL,
	blocks BLOB    NOT NULL,
	PRIMARY KEY (cx, cz)
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// checkSeed verifies that the database was produced with the given seed,
// recording it on first use. Mixing chunks from different seeds in one
// database would silently corrupt the world.
func checkSeed(db *sql.DB, seed int32) error {
	var stored string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'seed'`).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('seed', ?)`, fmt.Sprint(seed))
		if err != nil {
			return fmt.Errorf("record seed: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read seed: %w", err)
	}
	if stored != fmt.Sprint(seed) {
		return fmt.Errorf("chunk database was generated with seed %s, server runs seed %d", stored, seed)
	}
	return nil
}
