package services

import (
	"context"
	"errors"
	"fmt"

	"berdoz/internal/sheets"
	"berdoz/internal/storage"
)

// RecordGetter reads one record of a named module.
type RecordGetter interface {
	Get(ctx context.Context, module, id string) (any, error)
}

// Exporter mirrors one record change into the spreadsheet.
type Exporter struct {
	records RecordGetter
	writer  sheets.Writer
}

func NewExporter(records RecordGetter, writer sheets.Writer) *Exporter {
	return &Exporter{records: records, writer: writer}
}

// Export applies a change. An upsert of a record that no longer exists is
// exported as a delete.
func (e *Exporter) Export(ctx context.Context, module, id, action string) error {
	switch action {
	case storage.ActionDelete:
		return e.delete(ctx, module, id)
	case storage.ActionUpsert:
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	rec, err := e.records.Get(ctx, module, id)
	if errors.Is(err, storage.ErrNotFound) {
		return e.delete(ctx, module, id)
	}
	if err != nil {
		return fmt.Errorf("get %s %s: %w", module, id, err)
	}

	row, err := sheets.RowOf(module, rec)
	if err != nil {
		return err
	}
	if _, err := e.writer.Upsert(ctx, row); err != nil {
		return fmt.Errorf("export %s %s: %w", module, id, err)
	}
	return nil
}

func (e *Exporter) delete(ctx context.Context, module, id string) error {
	if err := e.writer.Delete(ctx, module, id); err != nil {
		return fmt.Errorf("delete %s %s from sheet: %w", module, id, err)
	}
	return nil
}
