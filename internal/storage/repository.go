package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

// SQLiteRepository owns the database handle shared by the module tables
// and the sync outbox.
type SQLiteRepository struct {
	db *sqlx.DB
}

var (
	_ Outbox = (*SQLiteRepository)(nil)
	_ Pinger = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Enqueue records that a module record changed. A later change of the same
// record replaces the earlier entry and resets its status.
func (r *SQLiteRepository) Enqueue(ctx context.Context, module, recordID, action string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_outbox (module, record_id, action, status, attempts, version, updated_at)
		VALUES (?, ?, ?, 'pending', 0, 1, ?)
		ON CONFLICT(module, record_id) DO UPDATE SET
			action = excluded.action,
			status = 'pending',
			attempts = 0,
			version = sync_outbox.version + 1,
			updated_at = excluded.updated_at`,
		module, recordID, action, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("enqueue %s/%s: %w", module, recordID, err)
	}
	return nil
}

func (r *SQLiteRepository) Pending(ctx context.Context, limit int) ([]OutboxEntry, error) {
	var out []OutboxEntry
	err := r.db.SelectContext(ctx, &out, `
		SELECT module, record_id, action, status, attempts, version, updated_at
		FROM sync_outbox
		WHERE status IN ('pending', 'error')
		ORDER BY attempts ASC, updated_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync entries: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Entry(ctx context.Context, module, recordID string) (OutboxEntry, error) {
	var e OutboxEntry
	err := r.db.GetContext(ctx, &e, `
		SELECT module, record_id, action, status, attempts, version, updated_at
		FROM sync_outbox
		WHERE module = ? AND record_id = ?`, module, recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	if err != nil {
		return e, fmt.Errorf("get sync entry %s/%s: %w", module, recordID, err)
	}
	return e, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, e OutboxEntry) error {
	return r.mark(ctx, e, StatusSynced)
}

func (r *SQLiteRepository) MarkError(ctx context.Context, e OutboxEntry) error {
	return r.mark(ctx, e, StatusError)
}

func (r *SQLiteRepository) mark(ctx context.Context, e OutboxEntry, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sync_outbox
		SET status = ?, attempts = attempts + 1
		WHERE module = ? AND record_id = ? AND version = ?`,
		status, e.Module, e.RecordID, e.Version)
	if err != nil {
		return fmt.Errorf("mark %s/%s %s: %w", e.Module, e.RecordID, status, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.Entry(ctx, e.Module, e.RecordID); err != nil {
		return err
	}
	return ErrOutboxChanged
}
