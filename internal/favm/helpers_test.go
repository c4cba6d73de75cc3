package favm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"berdoz/internal/core"
)

func payroll(id, name, year, month string, salary int64) core.PayrollEntry {
	return core.PayrollEntry{
		Meta:         core.Meta{ID: id},
		EmployeeName: name,
		Year:         core.PeriodPart(year),
		Month:        core.PeriodPart(month),
		Salary:       core.NewMoney(salary),
	}
}

func payrollModule() Module[core.PayrollEntry] {
	return Module[core.PayrollEntry]{
		Name:       "payroll",
		Endpoint:   "/api/payroll",
		TempPrefix: "payroll-",
		Fields: []WeightedField[core.PayrollEntry]{
			{Name: "employeeName", Weight: 1, Value: func(p core.PayrollEntry) string { return p.EmployeeName }},
			{Name: "notes", Weight: 0.5, Value: func(p core.PayrollEntry) string { return p.Notes }},
		},
		Searchable: func(p core.PayrollEntry) string {
			var b ContentBuilder
			return b.Money(p.Salary).Period(p.Year, p.Month).String()
		},
		Totals: Totals[core.PayrollEntry]{
			Primitives: []Primitive[core.PayrollEntry]{
				{Name: "totalSalary", Field: func(p core.PayrollEntry) any { return p.Salary }},
				{Name: "totalBonuses", Field: func(p core.PayrollEntry) any { return p.Bonus }},
			},
		},
	}
}

// fakeBackend records calls. When gate is set, Create and Update block on it
// after signalling started.
type fakeBackend[T core.Record[T]] struct {
	mu      sync.Mutex
	records []T
	listErr error
	saveErr error
	delErr  error

	started chan struct{}
	gate    chan struct{}

	lists, creates, updates, deletes atomic.Int32
	nextID                           atomic.Int32
}

func (f *fakeBackend[T]) List(context.Context) ([]T, error) {
	f.lists.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]T, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeBackend[T]) block() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeBackend[T]) Create(_ context.Context, rec T) (T, error) {
	f.creates.Add(1)
	f.block()
	if f.saveErr != nil {
		var zero T
		return zero, f.saveErr
	}
	meta := rec.GetMeta()
	if meta.ID != "" {
		var zero T
		return zero, errors.New("create received an id")
	}
	meta.ID = "00000000-0000-4000-8000-00000000000" + string(rune('0'+f.nextID.Add(1)))
	return rec.WithMeta(meta), nil
}

func (f *fakeBackend[T]) Update(_ context.Context, rec T) (T, error) {
	f.updates.Add(1)
	f.block()
	if f.saveErr != nil {
		var zero T
		return zero, f.saveErr
	}
	return rec, nil
}

func (f *fakeBackend[T]) Delete(context.Context, string) error {
	f.deletes.Add(1)
	return f.delErr
}

func (f *fakeBackend[T]) calls() int32 {
	return f.lists.Load() + f.creates.Load() + f.updates.Load() + f.deletes.Load()
}

type lockedGate map[string]bool

func (g lockedGate) Unlocked(module string) bool { return !g[module] }
