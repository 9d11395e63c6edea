package query

import (
	"io"
	"log"
	"testing"

	"github.com/mvp-joe/cartographer/internal/srg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for class queries:
// - '*' matches within one package segment, '**' across segments
// - External names match as well as canonical names
// - Invalid patterns return an error
// - Suggestions are ranked by similarity, limited, and thresholded

func testDatabase(t *testing.T) *srg.Database {
	t.Helper()
	db, _, err := srg.Import(srg.Input{Mappings: []string{
		"a net/minecraft/util/Direction",
		"b net/minecraft/world/World",
		"c net/minecraft/world/WorldServer",
		"d net/minecraft/entity/Entity",
	}}, srg.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	return db
}

func names(classes []srg.Class) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func TestClasses(t *testing.T) {
	t.Parallel()

	db := testDatabase(t)

	tests := []struct {
		pattern string
		want    []string
	}{
		{"net/minecraft/world/*", []string{"net/minecraft/world/World", "net/minecraft/world/WorldServer"}},
		{"net/minecraft/*", nil},
		{"net/**/World", []string{"net/minecraft/world/World"}},
		{"**/*Server", []string{"net/minecraft/world/WorldServer"}},
		{"[ab]", []string{"net/minecraft/util/Direction", "net/minecraft/world/World"}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()
			got, err := Classes(db, tt.pattern)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestClasses_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := Classes(testDatabase(t), "net/[")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	db := testDatabase(t)

	got := Suggest(db, "Wrold", 5, DefaultMinSimilarity)
	require.NotEmpty(t, got)
	assert.Equal(t, "net/minecraft/world/World", got[0].Class.Name)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	exact := Suggest(db, "net/minecraft/entity/Entity", 1, DefaultMinSimilarity)
	require.Len(t, exact, 1)
	assert.InDelta(t, 1.0, exact[0].Score, 1e-9)

	assert.Empty(t, Suggest(db, "zzzzzzzz", 5, DefaultMinSimilarity))
	assert.Empty(t, Suggest(db, "World", 0, DefaultMinSimilarity))
	assert.Len(t, Suggest(db, "World", 1, 0), 1)
}
