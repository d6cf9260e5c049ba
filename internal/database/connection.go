package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocabtrainer/internal/config"
)

// Connect opens the history database and makes sure the schema exists.
// SQLite is the default backend; postgres is selected via config.
func Connect(cfg config.DBConfig) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Driver {
	case "sqlite3":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initializeSchema creates the history table if it doesn't exist.
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS attempt_records (
			user_id INTEGER NOT NULL,
			source_text TEXT NOT NULL,
			topic TEXT NOT NULL,
			correct_count INTEGER NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			attempts TEXT NOT NULL DEFAULT '[]',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, source_text)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create attempt_records table: %w", err)
	}
	return nil
}
