package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/Masterminds/squirrel"

	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store is the sqlite-backed implementation of store.Store.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

var _ store.Store = (*Store)(nil)

// Open opens the database at path, applies pending migrations and returns a
// ready Store.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("store")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening database: %s", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // SQLite best practice for single writer

	s := &Store{db: sqlDB, log: log}

	log.Debug("applying migrations")
	if err := s.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		return nil, err
	}

	log.Info("database ready")
	return s, nil
}

// NewFromDB wraps an already-open connection. Used by tests.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db, log: logger.Default().WithPrefix("store")}
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := s.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			s.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		s.log.Info("applying migration: %s", version)
		if _, err := s.db.ExecContext(ctx, string(sqlBytes)); err != nil {
			s.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
		s.log.Info("migration %s applied successfully", version)
	}
	return nil
}

// Migration is one embedded schema migration.
type Migration struct {
	Version string
	SQL     string
}

// Migrations returns the embedded migrations in apply order. Exposed so the
// test helpers can build schema-complete in-memory databases.
func Migrations() []Migration {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		panic(err)
	}
	out := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			panic(err)
		}
		out = append(out, Migration{Version: entry.Name(), SQL: string(sqlBytes)})
	}
	return out
}

func (s *Store) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_migrations WHERE version = ?`, version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}
