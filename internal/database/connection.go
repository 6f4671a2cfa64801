package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/linguaweb/internal/config"
)

// Connect establishes a database connection and initializes the schema.
// Supported types are "sqlite" and "postgres".
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Type {
	case "sqlite":
		// Create data directory if it doesn't exist
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
		}

		db, err = sqlx.Connect("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				username TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, serial),
		`
			CREATE TABLE IF NOT EXISTS sessions (
				token TEXT PRIMARY KEY,
				user_id INTEGER NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				expires_at TIMESTAMP NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)
		`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS topics (
				id %s,
				name TEXT NOT NULL UNIQUE
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				word TEXT NOT NULL,
				translation TEXT NOT NULL,
				context TEXT NOT NULL,
				topic_id INTEGER NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (topic_id) REFERENCES topics(id),
				UNIQUE(word, topic_id)
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS progress (
				id %s,
				user_id INTEGER NOT NULL,
				topic_id INTEGER,
				lesson_id INTEGER,
				score REAL NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (topic_id) REFERENCES topics(id),
				UNIQUE(user_id, topic_id),
				UNIQUE(user_id, lesson_id),
				CHECK ((topic_id IS NULL) <> (lesson_id IS NULL))
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS quiz_words (
				id %s,
				user_id INTEGER NOT NULL,
				topic_id INTEGER NOT NULL,
				word_id INTEGER NOT NULL,
				issued_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (topic_id) REFERENCES topics(id),
				FOREIGN KEY (word_id) REFERENCES words(id),
				UNIQUE(user_id, topic_id, word_id)
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS learned_words (
				id %s,
				progress_id INTEGER NOT NULL,
				word TEXT NOT NULL,
				learned_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (progress_id) REFERENCES progress(id),
				UNIQUE(progress_id, word)
			)
		`, serial),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}

// DefaultTopics is the fixed topic list seeded when the topics table is empty.
var DefaultTopics = []string{
	"Food", "Travel", "Technology", "Health", "Education", "Sports",
	"Music", "Nature", "Family", "Clothing", "Animals", "Hobbies",
	"Jobs", "Shopping", "Transportation", "Entertainment",
	"Weather", "Culture", "History", "Science",
}

// SeedTopics inserts the default topic list if the topics table is empty.
func SeedTopics(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics"); err != nil {
		return fmt.Errorf("failed to count topics: %v", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range DefaultTopics {
		query := db.Rebind("INSERT INTO topics (name) VALUES (?)")
		if _, err := db.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("failed to seed topic %q: %v", name, err)
		}
	}
	return nil
}
