package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"berdoz/internal/core"
	"berdoz/internal/storage/memory"
	"berdoz/internal/validate"
)

type publishedChange struct {
	module, id, action string
}

type fakePublisher struct {
	mu      sync.Mutex
	changes []publishedChange
	err     error
}

func (p *fakePublisher) PublishRecordChange(_ context.Context, module, id, action string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, publishedChange{module, id, action})
	return nil
}

func (p *fakePublisher) published() []publishedChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedChange(nil), p.changes...)
}

var errBroker = errors.New("broker down")

func newTestCatalog(t *testing.T, pub Publisher) (*Catalog, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewCatalog(store.Tables(), Deps{
		Outbox:    store,
		Publisher: pub,
		Validator: validate.New(),
		Now:       func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) },
	}), store
}

func payroll(name string, salary int64) core.PayrollEntry {
	return core.PayrollEntry{EmployeeName: name, Salary: core.NewMoney(salary), Month: "3", Year: "2025"}
}
