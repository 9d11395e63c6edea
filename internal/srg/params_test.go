package srg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for parameter slot calculation:
// - Instance methods start at slot 1, static methods at slot 0
// - Long and double advance the slot by two
// - Empty parameter lists and malformed descriptors yield no parameters
// - Constructors always start at slot 1
// - Arrays and char parameters are not recognized by the scanner
// - buildParameters keeps only methods with parameters

func TestParametersOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		desc   string
		static bool
		want   []int
	}{
		{"instance mixed", "(IJLfoo/Bar;)V", false, []int{1, 2, 4}},
		{"static int", "(I)V", true, []int{0}},
		{"static wide", "(DJI)V", true, []int{0, 2, 4}},
		{"no parameters", "()V", false, nil},
		{"all narrow primitives", "(SBIZF)V", false, []int{1, 2, 3, 4, 5}},
		{"reference then double", "(Lcom/Foo;D)Lcom/Foo;", false, []int{1, 2}},
		{"malformed descriptor", "IJ", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NumberedMethod{Signature: Signature{Descriptor: tt.desc}, ID: 1, Static: tt.static}

			params := parametersOf(m)

			if tt.want == nil {
				assert.Empty(t, params)
				return
			}
			assert.Equal(t, tt.want, indexes(params))
			for _, p := range params {
				assert.Equal(t, Method(m), p.Parent)
			}
		})
	}
}

func TestParametersOf_ConstructorStartsAtOne(t *testing.T) {
	t.Parallel()

	c := Constructor{Signature: Signature{Descriptor: "(JI)V"}, ID: 7}
	assert.Equal(t, []int{1, 3}, indexes(parametersOf(c)))
}

// Arrays and chars are known gaps of the token scanner: '[' is skipped and
// the element type counted as a plain parameter, and 'C' is dropped.
func TestParametersOf_ScannerGaps(t *testing.T) {
	t.Parallel()

	array := NamedMethod{Signature: Signature{Descriptor: "([JI)V"}}
	assert.Equal(t, []int{1, 3}, indexes(parametersOf(array)))

	char := NamedMethod{Signature: Signature{Descriptor: "(CI)V"}}
	assert.Equal(t, []int{1}, indexes(parametersOf(char)))
}

func TestBuildParameters(t *testing.T) {
	t.Parallel()

	withParams := NamedMethod{Signature: Signature{Descriptor: "(I)V"}, Name: "a"}
	without := NamedMethod{Signature: Signature{Descriptor: "()V"}, Name: "b"}

	got := buildParameters([]NamedMethod{withParams, without}, 4)

	require.Len(t, got, 1)
	assert.Equal(t, []int{1}, indexes(got[withParams]))
}

func TestImport_ParameterCounts(t *testing.T) {
	t.Parallel()

	db, _ := importSample(t)

	assert.Equal(t, []int{0}, indexes(db.ParametersFor(82600)))
	assert.Equal(t, []int{1, 3, 4}, indexes(db.ParametersFor(72838)))
	assert.Equal(t, []int{1, 2}, indexes(db.ParametersFor(1)))
	assert.Empty(t, db.ParametersFor(176734))
	assert.Equal(t, []int{1}, indexes(db.ParametersFor(1000)))
	assert.Equal(t, []int{1, 2}, indexes(db.ParametersFor(1001)))

	dirMethod, ok := db.NumberedMethod(82600, direction)
	require.True(t, ok)
	assert.Equal(t, []int{0}, indexes(db.Parameters(dirMethod)))

	tick := db.NamedMethodsByName("tick")
	require.Len(t, tick, 1)
	assert.Equal(t, []int{1}, indexes(db.Parameters(tick[0])))
}
