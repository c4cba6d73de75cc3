// Package memory is an in-process storage backend for development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"berdoz/internal/core"
	"berdoz/internal/storage"
)

// Table keeps one module's records in a map.
type Table[T core.Record[T]] struct {
	mu    sync.Mutex
	items map[string]T
	now   func() time.Time
}

var _ storage.Repository[core.Teacher] = (*Table[core.Teacher])(nil)

func NewTable[T core.Record[T]]() *Table[T] {
	return &Table[T]{items: make(map[string]T), now: time.Now}
}

func (t *Table[T]) List(_ context.Context, limit int) ([]T, error) {
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	t.mu.Lock()
	out := make([]T, 0, len(t.items))
	for _, it := range t.items {
		out = append(out, it)
	}
	t.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].GetMeta(), out[j].GetMeta()
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *Table[T]) Get(_ context.Context, id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.items[id]
	if !ok {
		return rec, storage.ErrNotFound
	}
	return rec, nil
}

func (t *Table[T]) Create(_ context.Context, rec T) (T, error) {
	now := t.now().UTC()
	rec = rec.WithMeta(core.Meta{ID: core.NewID(), CreatedAt: now, UpdatedAt: now})
	t.mu.Lock()
	t.items[rec.GetID()] = rec
	t.mu.Unlock()
	return rec, nil
}

func (t *Table[T]) Update(_ context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.items[rec.GetID()]
	if !ok {
		var zero T
		return zero, storage.ErrNotFound
	}
	meta := old.GetMeta()
	meta.UpdatedAt = t.now().UTC()
	rec = rec.WithMeta(meta)
	t.items[meta.ID] = rec
	return rec, nil
}

func (t *Table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.items, id)
	return nil
}

func (t *Table[T]) Restore(_ context.Context, rec T) error {
	meta := rec.GetMeta()
	if meta.ID == "" {
		meta.ID = core.NewID()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = t.now().UTC()
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = meta.CreatedAt
	}
	t.mu.Lock()
	t.items[meta.ID] = rec.WithMeta(meta)
	t.mu.Unlock()
	return nil
}

// Store is the memory backend: one table per module plus an outbox.
type Store struct {
	mu     sync.Mutex
	outbox map[[2]string]storage.OutboxEntry
	tables storage.Tables
}

var (
	_ storage.Outbox = (*Store)(nil)
	_ storage.Pinger = (*Store)(nil)
)

func New() *Store {
	return &Store{
		outbox: make(map[[2]string]storage.OutboxEntry),
		tables: storage.Tables{
			BuildingExpenses: NewTable[core.BuildingExpense](),
			DailyAccounts:    NewTable[core.DailyAccount](),
			Installments:     NewTable[core.Installment](),
			Payroll:          NewTable[core.PayrollEntry](),
			Supervision:      NewTable[core.SupervisionEntry](),
			Teachers:         NewTable[core.Teacher](),
			KitchenExpenses:  NewTable[core.KitchenExpense](),
			MonthlyExpenses:  NewTable[core.MonthlyExpense](),
			Calendar:         NewTable[core.CalendarEntry](),
		},
	}
}

func (s *Store) Tables() storage.Tables { return s.tables }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Enqueue(_ context.Context, module, recordID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{module, recordID}
	s.outbox[key] = storage.OutboxEntry{
		Module:    module,
		RecordID:  recordID,
		Action:    action,
		Status:    storage.StatusPending,
		Version:   s.outbox[key].Version + 1,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *Store) Pending(_ context.Context, limit int) ([]storage.OutboxEntry, error) {
	s.mu.Lock()
	out := make([]storage.OutboxEntry, 0, len(s.outbox))
	for _, e := range s.outbox {
		if e.Status != storage.StatusSynced {
			out = append(out, e)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Attempts != out[j].Attempts {
			return out[i].Attempts < out[j].Attempts
		}
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].RecordID < out[j].RecordID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Entry(_ context.Context, module, recordID string) (storage.OutboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.outbox[[2]string{module, recordID}]
	if !ok {
		return e, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) MarkSynced(_ context.Context, e storage.OutboxEntry) error {
	return s.mark(e, storage.StatusSynced)
}

func (s *Store) MarkError(_ context.Context, e storage.OutboxEntry) error {
	return s.mark(e, storage.StatusError)
}

func (s *Store) mark(e storage.OutboxEntry, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{e.Module, e.RecordID}
	cur, ok := s.outbox[key]
	if !ok {
		return storage.ErrNotFound
	}
	if cur.Version != e.Version {
		return storage.ErrOutboxChanged
	}
	cur.Status = status
	cur.Attempts++
	s.outbox[key] = cur
	return nil
}
