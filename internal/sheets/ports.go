package sheets

import "context"

// Row is one module record rendered for a spreadsheet tab. The record id
// always goes in the first column.
type Row struct {
	Tab    string
	Header []string
	ID     string
	Values []any
}

// Cells returns the id followed by the values.
func (r Row) Cells() []any {
	return append([]any{r.ID}, r.Values...)
}

// Writer is the export sink the worker mirrors records into.
type Writer interface {
	// Upsert writes the row in place when a row with the same id exists in
	// the tab and appends it otherwise.
	Upsert(ctx context.Context, row Row) (ref string, err error)
	// Delete clears the row holding id. A missing row is not an error.
	Delete(ctx context.Context, tab, id string) error
}
