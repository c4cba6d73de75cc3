package favm

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"berdoz/internal/core"
)

// Backend is the REST boundary of one module.
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Validator checks a record before it is sent.
type Validator interface {
	Struct(v any) error
}

// Gate decides whether writes to a module are allowed.
type Gate interface {
	Unlocked(module string) bool
}

type options struct {
	validator Validator
	gate      Gate
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*options)

func WithValidator(v Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithSession gates writes on the session's lock state for the module.
func WithSession(g Gate) Option {
	return func(o *options) { o.gate = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// ViewModel drives one module: it loads the collection, renders filtered
// views and commits writes through the backend.
type ViewModel[T core.Record[T]] struct {
	module   Module[T]
	backend  Backend[T]
	store    *Store[T]
	pipeline *Pipeline[T]
	editor   Editor
	opts     options

	mu      sync.Mutex
	state   ViewState
	tempSeq atomic.Int64
}

func NewViewModel[T core.Record[T]](module Module[T], backend Backend[T], opts ...Option) *ViewModel[T] {
	o := options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &ViewModel[T]{
		module:   module,
		backend:  backend,
		store:    NewStore[T](module.Name),
		pipeline: module.Pipeline(),
		opts:     o,
		state:    DefaultViewState(),
	}
}

func (vm *ViewModel[T]) Module() Module[T] { return vm.module }
func (vm *ViewModel[T]) Phase() Phase     { return vm.editor.Phase() }
func (vm *ViewModel[T]) Records() []T     { return vm.store.Snapshot() }

// Load fetches the collection. A failure keeps the current records and is
// returned as a *LoadError.
func (vm *ViewModel[T]) Load(ctx context.Context) error {
	err := vm.store.Load(ctx, vm.backend.List)
	if err != nil {
		vm.opts.logger.WarnContext(ctx, "Failed to load records", "module", vm.module.Name, "error", err)
		return err
	}
	vm.opts.logger.DebugContext(ctx, "Records loaded", "module", vm.module.Name, "count", vm.store.Len())
	return nil
}

func (vm *ViewModel[T]) State() ViewState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

func (vm *ViewModel[T]) SetQuery(q string) {
	vm.mu.Lock()
	vm.state.Query = q
	vm.mu.Unlock()
}

func (vm *ViewModel[T]) SetTableFilter(f PeriodFilter) {
	vm.mu.Lock()
	vm.state.Table = f
	vm.mu.Unlock()
}

func (vm *ViewModel[T]) SetSummaryFilter(f PeriodFilter) {
	vm.mu.Lock()
	vm.state.Summary = f
	vm.mu.Unlock()
}

// View renders the current snapshot under the current state.
func (vm *ViewModel[T]) View() View[T] {
	return vm.pipeline.Run(vm.store.Snapshot(), vm.State())
}

// NewTempID returns a client-side id for a record not yet saved.
func (vm *ViewModel[T]) NewTempID() string {
	return vm.module.TempPrefix + strconv.FormatInt(vm.tempSeq.Add(1), 10)
}

// Begin opens the editor for a new or existing record.
func (vm *ViewModel[T]) Begin() error { return vm.editor.Begin() }

// Cancel closes the editor.
func (vm *ViewModel[T]) Cancel() { vm.editor.Cancel() }

// Save creates or updates rec. Records with an empty or temporary id are
// created; the backend assigns the persisted id. The store is only changed
// with the backend's response.
func (vm *ViewModel[T]) Save(ctx context.Context, rec T) (T, error) {
	var zero T
	if !vm.unlocked() {
		return zero, ErrLocked
	}
	if vm.opts.validator != nil {
		if err := vm.opts.validator.Struct(rec); err != nil {
			if !vm.editor.busy.Load() {
				vm.editor.set(Editing)
			}
			return zero, err
		}
	}
	if !vm.editor.acquire(Saving) {
		return zero, ErrInFlight
	}

	var (
		saved T
		err   error
	)
	if vm.isNew(rec.GetID()) {
		meta := rec.GetMeta()
		meta.ID = ""
		saved, err = vm.backend.Create(ctx, rec.WithMeta(meta))
	} else {
		saved, err = vm.backend.Update(ctx, rec)
	}
	if err != nil {
		vm.editor.release(Editing)
		vm.opts.logger.ErrorContext(ctx, "Failed to save record", "module", vm.module.Name, "id", rec.GetID(), "error", err)
		return zero, fmt.Errorf("save %s: %w", vm.module.Name, err)
	}

	vm.store.Upsert(saved)
	vm.editor.release(Viewing)
	vm.opts.logger.InfoContext(ctx, "Record saved", "module", vm.module.Name, "id", saved.GetID())
	return saved, nil
}

// Delete removes the record. Temporary ids are removed locally without a
// backend call. A failed backend delete leaves the record in place.
func (vm *ViewModel[T]) Delete(ctx context.Context, id string) error {
	if !vm.unlocked() {
		return ErrLocked
	}
	if core.IsTemporaryID(id, vm.module.TempPrefix) {
		vm.store.Remove(id)
		return nil
	}
	if !vm.editor.acquire(Deleting) {
		return ErrInFlight
	}
	if err := vm.backend.Delete(ctx, id); err != nil {
		vm.editor.release(Viewing)
		vm.opts.logger.ErrorContext(ctx, "Failed to delete record", "module", vm.module.Name, "id", id, "error", err)
		return fmt.Errorf("delete %s: %w", vm.module.Name, err)
	}
	vm.store.Remove(id)
	vm.editor.release(Viewing)
	vm.opts.logger.InfoContext(ctx, "Record deleted", "module", vm.module.Name, "id", id)
	return nil
}

func (vm *ViewModel[T]) isNew(id string) bool {
	return id == "" || core.IsTemporaryID(id, vm.module.TempPrefix)
}

func (vm *ViewModel[T]) unlocked() bool {
	return vm.opts.gate == nil || vm.opts.gate.Unlocked(vm.module.Name)
}
