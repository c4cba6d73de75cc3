package favm

import "berdoz/internal/core"

// SearchableContentWeight is the weight of the synthetic content field
// unless a module overrides it.
const SearchableContentWeight = 0.3

// Module describes one record type to the generic view model and to the
// HTTP layer.
type Module[T core.Record[T]] struct {
	// Name is the short key used in logs, gates, backups and change events.
	Name string
	// Endpoint is the REST base path, e.g. /api/payroll.
	Endpoint string
	// TempPrefix marks client-side ids that were never persisted.
	TempPrefix string

	Fields           []WeightedField[T]
	Searchable       func(T) string
	SearchableWeight float64

	Totals Totals[T]
}

// SearchFields returns the weighted fields plus the searchable content.
func (m Module[T]) SearchFields() []WeightedField[T] {
	fields := make([]WeightedField[T], 0, len(m.Fields)+1)
	fields = append(fields, m.Fields...)
	if m.Searchable != nil {
		w := m.SearchableWeight
		if w == 0 {
			w = SearchableContentWeight
		}
		fields = append(fields, WeightedField[T]{Name: SearchableContentField, Weight: w, Value: m.Searchable})
	}
	return fields
}

func (m Module[T]) Matcher() *Matcher[T] {
	return NewMatcher(m.SearchFields(), DefaultOptions())
}

func (m Module[T]) Pipeline() *Pipeline[T] {
	return NewPipeline(m.Matcher(), m.Totals)
}

// IsTemporaryID reports whether id was assigned client-side.
func (m Module[T]) IsTemporaryID(id string) bool {
	return core.IsTemporaryID(id, m.TempPrefix)
}
