package storage

import (
	"context"
	"errors"
	"time"

	"berdoz/internal/core"
)

// DefaultListLimit caps List results.
const DefaultListLimit = 1000

var (
	ErrNotFound = errors.New("record not found")
	// ErrOutboxChanged means the record changed again after the entry was
	// read; the newer change stays pending.
	ErrOutboxChanged = errors.New("outbox entry changed")
)

// Repository persists the records of one module.
type Repository[T core.Record[T]] interface {
	// List returns up to limit records, most recently updated first.
	List(ctx context.Context, limit int) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Create stores rec under a new id and returns it with its timestamps.
	Create(ctx context.Context, rec T) (T, error)
	// Update replaces the stored fields of rec.ID. ErrNotFound when absent.
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id string) error
	// Restore inserts or replaces rec keeping its id and timestamps.
	Restore(ctx context.Context, rec T) error
}

// Sync actions recorded in the outbox and carried by change events.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// Outbox statuses.
const (
	StatusPending = "pending"
	StatusSynced  = "synced"
	StatusError   = "error"
)

// OutboxEntry is a record change not yet exported to the spreadsheet.
type OutboxEntry struct {
	Module    string    `db:"module"`
	RecordID  string    `db:"record_id"`
	Action    string    `db:"action"`
	Status    string    `db:"status"`
	Attempts  int       `db:"attempts"`
	// Version grows with every Enqueue of the same record.
	Version   int64     `db:"version"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Outbox tracks which record changes still need exporting.
type Outbox interface {
	Enqueue(ctx context.Context, module, recordID, action string) error
	// Pending returns pending and failed entries, fewest attempts first
	// and oldest first within the same attempt count.
	Pending(ctx context.Context, limit int) ([]OutboxEntry, error)
	Entry(ctx context.Context, module, recordID string) (OutboxEntry, error)
	// MarkSynced and MarkError update e only while its version is current,
	// ErrOutboxChanged otherwise.
	MarkSynced(ctx context.Context, e OutboxEntry) error
	MarkError(ctx context.Context, e OutboxEntry) error
}

// Pinger reports whether the storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
