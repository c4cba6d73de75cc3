package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"berdoz/internal/core"
)

// Schema names a module table and its data columns. The id, created_at and
// updated_at columns are implied.
type Schema struct {
	Table   string
	Columns []string
}

var metaColumns = []string{"id", "created_at", "updated_at"}

// Table is the sqlx implementation of Repository for one module.
type Table[T core.Record[T]] struct {
	db     *SQLiteRepository
	schema Schema
	now    func() time.Time

	selectCols string
	insertSQL  string
	updateSQL  string
	restoreSQL string
}

// NewTable binds a module schema to the database.
func NewTable[T core.Record[T]](db *SQLiteRepository, schema Schema) *Table[T] {
	all := append(append([]string{}, metaColumns...), schema.Columns...)

	named := make([]string, len(all))
	for i, c := range all {
		named[i] = ":" + c
	}
	sets := make([]string, 0, len(schema.Columns)+1)
	for _, c := range schema.Columns {
		sets = append(sets, c+" = :"+c)
	}
	sets = append(sets, "updated_at = :updated_at")

	restoreSets := make([]string, 0, len(all)-1)
	for _, c := range all[1:] {
		restoreSets = append(restoreSets, c+" = excluded."+c)
	}

	cols := strings.Join(all, ", ")
	return &Table[T]{
		db:         db,
		schema:     schema,
		now:        time.Now,
		selectCols: cols,
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			schema.Table, cols, strings.Join(named, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = :id",
			schema.Table, strings.Join(sets, ", ")),
		restoreSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
			schema.Table, cols, strings.Join(named, ", "), strings.Join(restoreSets, ", ")),
	}
}

func (t *Table[T]) List(ctx context.Context, limit int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var out []T
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY updated_at DESC, created_at DESC LIMIT ?", t.selectCols, t.schema.Table)
	if err := t.db.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.schema.Table, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.selectCols, t.schema.Table)
	if err := t.db.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("get %s %s: %w", t.schema.Table, id, err)
	}
	return rec, nil
}

func (t *Table[T]) Create(ctx context.Context, rec T) (T, error) {
	now := t.now().UTC()
	rec = rec.WithMeta(core.Meta{ID: core.NewID(), CreatedAt: now, UpdatedAt: now})
	if _, err := t.db.db.NamedExecContext(ctx, t.insertSQL, rec); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", t.schema.Table, err)
	}
	return rec, nil
}

func (t *Table[T]) Update(ctx context.Context, rec T) (T, error) {
	meta := rec.GetMeta()
	meta.UpdatedAt = t.now().UTC()
	res, err := t.db.db.NamedExecContext(ctx, t.updateSQL, rec.WithMeta(meta))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("update %s %s: %w", t.schema.Table, meta.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return t.Get(ctx, meta.ID)
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res, err := t.db.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.schema.Table), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", t.schema.Table, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[T]) Restore(ctx context.Context, rec T) error {
	meta := rec.GetMeta()
	if meta.ID == "" {
		meta.ID = core.NewID()
	}
	now := t.now().UTC()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = meta.CreatedAt
	}
	if _, err := t.db.db.NamedExecContext(ctx, t.restoreSQL, rec.WithMeta(meta)); err != nil {
		return fmt.Errorf("restore %s %s: %w", t.schema.Table, meta.ID, err)
	}
	return nil
}
