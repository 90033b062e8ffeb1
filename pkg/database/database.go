package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alimgiray/pessoas/pkg/logger"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Init opens the SQLite database at path and runs the migrations in migrationsDir
func Init(path, migrationsDir string) error {
	var err error

	DB, err = Open(path)
	if err != nil {
		return err
	}

	logger.WithField("path", path).Info("Database connected successfully with WAL mode")

	return RunSQLScripts(DB, migrationsDir)
}

// Open opens a SQLite database (creates it if it doesn't exist) and applies pragmas
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = optimizeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// optimizeDatabase configures SQLite for concurrent web access
func optimizeDatabase(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=10000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// RunSQLScripts executes every .sql file in dir in name order
func RunSQLScripts(db *sql.DB, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".sql" {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sqlContent, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(sqlContent)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}

		logger.WithField("script", name).Info("Executed SQL script")
	}

	return nil
}
