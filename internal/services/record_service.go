package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"berdoz/internal/cache"
	"berdoz/internal/core"
	"berdoz/internal/favm"
	"berdoz/internal/storage"
)

// Publisher announces record changes to the worker.
type Publisher interface {
	PublishRecordChange(ctx context.Context, module, id, action string) error
}

// Deps are the collaborators shared by every RecordService.
type Deps struct {
	Outbox    storage.Outbox
	Publisher Publisher
	Validator favm.Validator
	Logger    *slog.Logger

	// Caches registers the list caches; nil leaves them unreported.
	Caches    *cache.Manager
	CacheSize int
	CacheTTL  time.Duration

	Now func() time.Time
}

// RecordService orchestrates writes of one module across storage, the sync
// outbox and the change event exchange. Storage is the source of truth: an
// outbox or publish failure is logged and never fails the request.
type RecordService[T core.Record[T]] struct {
	module    favm.Module[T]
	repo      storage.Repository[T]
	outbox    storage.Outbox
	publisher Publisher
	validator favm.Validator
	lists     cache.Cache[[]T]
	now       func() time.Time

	// gen counts writes; a list read from storage is only cached when no
	// write landed while it was being read.
	mu  sync.Mutex
	gen uint64

	logger    *slog.Logger
}

func NewRecordService[T core.Record[T]](module favm.Module[T], repo storage.Repository[T], deps Deps) *RecordService[T] {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	size, ttl := deps.CacheSize, deps.CacheTTL
	if size <= 0 {
		size = 16
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	lists := cache.NewLRUCache[[]T](module.Name, size, ttl)
	if deps.Caches != nil {
		deps.Caches.Register(lists)
	}
	return &RecordService[T]{
		module:    module,
		repo:      repo,
		outbox:    deps.Outbox,
		publisher: deps.Publisher,
		validator: deps.Validator,
		lists:     lists,
		now:       deps.Now,
		logger:    deps.Logger.With("component", "records", "module", module.Name),
	}
}

func (s *RecordService[T]) Module() favm.Module[T] { return s.module }

// List returns up to limit records, most recently updated first.
func (s *RecordService[T]) List(ctx context.Context, limit int) ([]T, error) {
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	key := strconv.Itoa(limit)
	if recs, ok := s.lists.Get(key); ok {
		return recs, nil
	}
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	recs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.module.Name, err)
	}

	s.mu.Lock()
	if s.gen == gen {
		s.lists.Set(key, recs)
	}
	s.mu.Unlock()
	return recs, nil
}

func (s *RecordService[T]) Get(ctx context.Context, id string) (T, error) {
	return s.repo.Get(ctx, id)
}

// Create validates rec and stores it under a fresh id. Any id sent by the
// client is ignored.
func (s *RecordService[T]) Create(ctx context.Context, rec T) (T, error) {
	rec = rec.WithMeta(core.Meta{}).WithDefaults(s.now())
	if err := s.validate(rec); err != nil {
		return rec, err
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return created, fmt.Errorf("create %s: %w", s.module.Name, err)
	}
	s.changed(ctx, created.GetID(), storage.ActionUpsert)
	return created, nil
}

// Update replaces the fields of the record stored under id.
func (s *RecordService[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	meta := rec.GetMeta()
	meta.ID = id
	rec = rec.WithMeta(meta).WithDefaults(s.now())
	if err := s.validate(rec); err != nil {
		return rec, err
	}
	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return updated, fmt.Errorf("update %s %s: %w", s.module.Name, id, err)
	}
	s.changed(ctx, id, storage.ActionUpsert)
	return updated, nil
}

func (s *RecordService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", s.module.Name, id, err)
	}
	s.changed(ctx, id, storage.ActionDelete)
	return nil
}

// Restore upserts backed up records keeping their ids and timestamps. It
// stops at the first failure and reports how many were written.
func (s *RecordService[T]) Restore(ctx context.Context, recs []T) (int, error) {
	n := 0
	for _, rec := range recs {
		rec = rec.WithDefaults(s.now())
		if err := s.repo.Restore(ctx, rec); err != nil {
			s.invalidate()
			return n, fmt.Errorf("restore %s: %w", s.module.Name, err)
		}
		s.changed(ctx, rec.GetID(), storage.ActionUpsert)
		n++
	}
	return n, nil
}

// View renders the module's records for the given state.
func (s *RecordService[T]) View(ctx context.Context, state favm.ViewState) (favm.View[T], error) {
	recs, err := s.List(ctx, 0)
	if err != nil {
		return favm.View[T]{}, err
	}
	return s.module.Pipeline().Run(recs, state), nil
}

// Search returns up to limit records matching query, best first.
func (s *RecordService[T]) Search(ctx context.Context, query string, limit int) ([]T, error) {
	recs, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	m := s.module.Matcher()
	if len(m.Tokens(query)) == 0 {
		return []T{}, nil
	}
	found := m.Match(recs, query)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (s *RecordService[T]) validate(rec T) error {
	if s.validator == nil {
		return nil
	}
	return s.validator.Struct(rec)
}

func (s *RecordService[T]) invalidate() {
	s.mu.Lock()
	s.gen++
	s.lists.Clear()
	s.mu.Unlock()
}

// changed drops cached lists and announces the change.
func (s *RecordService[T]) changed(ctx context.Context, id, action string) {
	s.invalidate()

	if s.outbox != nil {
		if err := s.outbox.Enqueue(ctx, s.module.Name, id, action); err != nil {
			s.logger.ErrorContext(ctx, "Failed to enqueue sync entry", "record_id", id, "error", err)
		}
	}

	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not available, skipping change event", "record_id", id)
	} else if err := s.publisher.PublishRecordChange(ctx, s.module.Name, id, action); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish change event", "record_id", id, "action", action, "error", err)
	}

	s.logger.DebugContext(ctx, "Record change announced", "record_id", id, "action", action)
}
