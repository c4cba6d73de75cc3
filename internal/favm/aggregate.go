package favm

import "berdoz/internal/core"

// Field extracts one numeric-ish value from a record. Whatever it returns is
// coerced with core.CoerceMoney, so non-numeric values count as zero.
type Field[T any] func(T) any

// Sum adds up field over records. An empty slice sums to zero.
func Sum[T any](records []T, field Field[T]) core.Money {
	total := core.Zero
	for _, r := range records {
		total = total.Add(core.CoerceMoney(field(r)))
	}
	return total
}

// Count is a Field that yields 1 when pred holds, for counting totals.
func Count[T any](pred func(T) bool) Field[T] {
	return func(r T) any {
		if pred(r) {
			return 1
		}
		return 0
	}
}

// Primitive is a total summed straight from the records.
type Primitive[T any] struct {
	Name  string
	Field Field[T]
}

// Composite is a total computed from previously computed totals, never from
// the records themselves.
type Composite struct {
	Name    string
	Compute func(sums map[string]core.Money) core.Money
}

// Totals defines the ordered totals of a module.
type Totals[T any] struct {
	Primitives []Primitive[T]
	Composites []Composite
}

// Compute evaluates the primitives over records and then the composites,
// in declaration order. Each composite sees every total declared before it.
func (t Totals[T]) Compute(records []T) core.Totals {
	out := make(core.Totals, 0, len(t.Primitives)+len(t.Composites))
	sums := make(map[string]core.Money, cap(out))
	for _, p := range t.Primitives {
		v := Sum(records, p.Field)
		sums[p.Name] = v
		out = append(out, core.Total{Name: p.Name, Amount: v})
	}
	for _, c := range t.Composites {
		v := c.Compute(sums)
		sums[c.Name] = v
		out = append(out, core.Total{Name: c.Name, Amount: v})
	}
	return out
}
