package srg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	t.Parallel()

	tbl := NewTable[int, string, string]()
	tbl.Put(1, "a", "1a")
	tbl.Put(1, "b", "1b")
	tbl.Put(2, "a", "2a")
	tbl.Put(1, "a", "1a'")

	assert.Equal(t, 3, tbl.Len(), "overwrite does not grow the table")
	assert.Equal(t, 2, tbl.Rows())

	v, ok := tbl.Get(1, "a")
	assert.True(t, ok)
	assert.Equal(t, "1a'", v)
	_, ok = tbl.Get(2, "b")
	assert.False(t, ok)

	assert.True(t, tbl.ContainsRow(2))
	assert.False(t, tbl.ContainsRow(3))

	row := tbl.Row(1)
	assert.Equal(t, map[string]string{"a": "1a'", "b": "1b"}, row)
	row["c"] = "mutated"
	assert.Equal(t, 3, tbl.Len())
	assert.Empty(t, tbl.Row(3))

	assert.ElementsMatch(t, []string{"1a'", "1b", "2a"}, tbl.Values())

	upper := tbl.Transform(func(s string) string { return s + "!" })
	v, _ = upper.Get(2, "a")
	assert.Equal(t, "2a!", v)
	v, _ = tbl.Get(2, "a")
	assert.Equal(t, "2a", v)
}
