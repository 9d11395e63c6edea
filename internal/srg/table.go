package srg

import (
	"cmp"
	"slices"
)

// Table is a two-dimensional map keyed by (row, column). It mirrors the
// shape of numbered methods: one id (row) may have entries in several
// classes (columns).
type Table[R, C comparable, V any] struct {
	rows map[R]map[C]V
	size int
}

// NewTable returns an empty table.
func NewTable[R, C comparable, V any]() *Table[R, C, V] {
	return &Table[R, C, V]{rows: make(map[R]map[C]V)}
}

// Put stores v at (r, c), replacing any previous value.
func (t *Table[R, C, V]) Put(r R, c C, v V) {
	row, ok := t.rows[r]
	if !ok {
		row = make(map[C]V)
		t.rows[r] = row
	}
	if _, exists := row[c]; !exists {
		t.size++
	}
	row[c] = v
}

// Get returns the value at (r, c).
func (t *Table[R, C, V]) Get(r R, c C) (V, bool) {
	v, ok := t.rows[r][c]
	return v, ok
}

// ContainsRow reports whether any column holds a value for r.
func (t *Table[R, C, V]) ContainsRow(r R) bool {
	return len(t.rows[r]) > 0
}

// Row returns a copy of the column map for r.
func (t *Table[R, C, V]) Row(r R) map[C]V {
	row := t.rows[r]
	out := make(map[C]V, len(row))
	for c, v := range row {
		out[c] = v
	}
	return out
}

// Len returns the number of cells.
func (t *Table[R, C, V]) Len() int { return t.size }

// Rows returns the number of distinct row keys.
func (t *Table[R, C, V]) Rows() int { return len(t.rows) }

// Values returns every cell value in unspecified order.
func (t *Table[R, C, V]) Values() []V {
	out := make([]V, 0, t.size)
	for _, row := range t.rows {
		for _, v := range row {
			out = append(out, v)
		}
	}
	return out
}

// Transform returns a new table with fn applied to every cell.
func (t *Table[R, C, V]) Transform(fn func(V) V) *Table[R, C, V] {
	out := NewTable[R, C, V]()
	for r, row := range t.rows {
		for c, v := range row {
			out.Put(r, c, fn(v))
		}
	}
	return out
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
