package services

import (
	"context"
	"errors"
	"fmt"

	"berdoz/internal/core"
	"berdoz/internal/modules"
	"berdoz/internal/storage"
)

// Catalog holds the record service of every module.
type Catalog struct {
	BuildingExpenses *RecordService[core.BuildingExpense]
	DailyAccounts    *RecordService[core.DailyAccount]
	Installments     *RecordService[core.Installment]
	Payroll          *RecordService[core.PayrollEntry]
	Supervision      *RecordService[core.SupervisionEntry]
	Teachers         *RecordService[core.Teacher]
	KitchenExpenses  *RecordService[core.KitchenExpense]
	MonthlyExpenses  *RecordService[core.MonthlyExpense]
	Calendar         *RecordService[core.CalendarEntry]
}

// NewCatalog wires one RecordService per module over the given tables.
func NewCatalog(tables storage.Tables, deps Deps) *Catalog {
	return &Catalog{
		BuildingExpenses: NewRecordService(modules.BuildingExpense(), tables.BuildingExpenses, deps),
		DailyAccounts:    NewRecordService(modules.DailyAccount(), tables.DailyAccounts, deps),
		Installments:     NewRecordService(modules.Installment(), tables.Installments, deps),
		Payroll:          NewRecordService(modules.PayrollEntry(), tables.Payroll, deps),
		Supervision:      NewRecordService(modules.SupervisionEntry(), tables.Supervision, deps),
		Teachers:         NewRecordService(modules.Teacher(), tables.Teachers, deps),
		KitchenExpenses:  NewRecordService(modules.KitchenExpense(), tables.KitchenExpenses, deps),
		MonthlyExpenses:  NewRecordService(modules.MonthlyExpense(), tables.MonthlyExpenses, deps),
		Calendar:         NewRecordService(modules.CalendarEntry(), tables.Calendar, deps),
	}
}

// Get fetches one record of the named module.
func (c *Catalog) Get(ctx context.Context, module, id string) (any, error) {
	switch module {
	case modules.BuildingExpenses:
		return c.BuildingExpenses.Get(ctx, id)
	case modules.DailyAccounts:
		return c.DailyAccounts.Get(ctx, id)
	case modules.Installments:
		return c.Installments.Get(ctx, id)
	case modules.Payroll:
		return c.Payroll.Get(ctx, id)
	case modules.Supervision:
		return c.Supervision.Get(ctx, id)
	case modules.Teachers:
		return c.Teachers.Get(ctx, id)
	case modules.KitchenExpenses:
		return c.KitchenExpenses.Get(ctx, id)
	case modules.MonthlyExpenses:
		return c.MonthlyExpenses.Get(ctx, id)
	case modules.Calendar:
		return c.Calendar.Get(ctx, id)
	default:
		return nil, fmt.Errorf("unknown module %q", module)
	}
}

// Backup is a full export keyed by module name.
type Backup struct {
	BuildingExpenses []core.BuildingExpense  `json:"building-expenses"`
	DailyAccounts    []core.DailyAccount     `json:"daily-accounts"`
	Installments     []core.Installment      `json:"installments"`
	Payroll          []core.PayrollEntry     `json:"payroll"`
	Supervision      []core.SupervisionEntry `json:"supervision"`
	Teachers         []core.Teacher          `json:"teachers"`
	KitchenExpenses  []core.KitchenExpense   `json:"kitchen-expenses"`
	MonthlyExpenses  []core.MonthlyExpense   `json:"monthly-expenses"`
	Calendar         []core.CalendarEntry    `json:"calendar"`
}

// Backup lists every module.
func (c *Catalog) Backup(ctx context.Context) (Backup, error) {
	var (
		b   Backup
		err error
	)
	if b.BuildingExpenses, err = c.BuildingExpenses.List(ctx, 0); err != nil {
		return b, err
	}
	if b.DailyAccounts, err = c.DailyAccounts.List(ctx, 0); err != nil {
		return b, err
	}
	if b.Installments, err = c.Installments.List(ctx, 0); err != nil {
		return b, err
	}
	if b.Payroll, err = c.Payroll.List(ctx, 0); err != nil {
		return b, err
	}
	if b.Supervision, err = c.Supervision.List(ctx, 0); err != nil {
		return b, err
	}
	if b.Teachers, err = c.Teachers.List(ctx, 0); err != nil {
		return b, err
	}
	if b.KitchenExpenses, err = c.KitchenExpenses.List(ctx, 0); err != nil {
		return b, err
	}
	if b.MonthlyExpenses, err = c.MonthlyExpenses.List(ctx, 0); err != nil {
		return b, err
	}
	if b.Calendar, err = c.Calendar.List(ctx, 0); err != nil {
		return b, err
	}
	return b, nil
}

// Restore upserts a backup and returns the number of records written per
// module.
func (c *Catalog) Restore(ctx context.Context, b Backup) (map[string]int, error) {
	counts := make(map[string]int, len(modules.Names))
	steps := []struct {
		name string
		run  func() (int, error)
	}{
		{modules.BuildingExpenses, func() (int, error) { return c.BuildingExpenses.Restore(ctx, b.BuildingExpenses) }},
		{modules.DailyAccounts, func() (int, error) { return c.DailyAccounts.Restore(ctx, b.DailyAccounts) }},
		{modules.Installments, func() (int, error) { return c.Installments.Restore(ctx, b.Installments) }},
		{modules.Payroll, func() (int, error) { return c.Payroll.Restore(ctx, b.Payroll) }},
		{modules.Supervision, func() (int, error) { return c.Supervision.Restore(ctx, b.Supervision) }},
		{modules.Teachers, func() (int, error) { return c.Teachers.Restore(ctx, b.Teachers) }},
		{modules.KitchenExpenses, func() (int, error) { return c.KitchenExpenses.Restore(ctx, b.KitchenExpenses) }},
		{modules.MonthlyExpenses, func() (int, error) { return c.MonthlyExpenses.Restore(ctx, b.MonthlyExpenses) }},
		{modules.Calendar, func() (int, error) { return c.Calendar.Restore(ctx, b.Calendar) }},
	}
	for _, step := range steps {
		n, err := step.run()
		counts[step.name] = n
		if err != nil {
			return counts, err
		}
	}
	return counts, nil
}

// ErrEmptyQuery is returned by Search when the query has no usable token.
var ErrEmptyQuery = errors.New("empty search query")

// Search runs query against every module and returns up to limit matches
// per module, keyed by module name.
func (c *Catalog) Search(ctx context.Context, query string, limit int) (map[string]any, error) {
	if len(c.Payroll.Module().Matcher().Tokens(query)) == 0 {
		return nil, ErrEmptyQuery
	}
	out := make(map[string]any, len(modules.Names))
	var err error
	if out[modules.BuildingExpenses], err = c.BuildingExpenses.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.DailyAccounts], err = c.DailyAccounts.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.Installments], err = c.Installments.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.Payroll], err = c.Payroll.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.Supervision], err = c.Supervision.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.Teachers], err = c.Teachers.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.KitchenExpenses], err = c.KitchenExpenses.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.MonthlyExpenses], err = c.MonthlyExpenses.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	if out[modules.Calendar], err = c.Calendar.Search(ctx, query, limit); err != nil {
		return nil, err
	}
	return out, nil
}
