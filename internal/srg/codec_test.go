package srg

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the text codec:
// - Serialize then Deserialize yields an equal database with the same
//   fingerprint and the same serialized text
// - Each section marker appears exactly once
// - Sections are found by marker, so reordering them changes nothing
// - A missing section reads as empty; a missing end marker runs to EOF
// - Lines that do not match their section are skipped and counted
// - References to undefined classes, methods or constructors are fatal
// - Numbered parameter lines without a class resolve to the first class

func sections(lines []string) map[section][]string {
	out := make(map[section][]string)
	var current section
	for _, line := range lines {
		if strings.HasPrefix(line, "{ [START] ") {
			current = section(strings.TrimSuffix(strings.TrimPrefix(line, "{ [START] "), " }"))
		}
		out[current] = append(out[current], line)
	}
	return out
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	db, _ := importSample(t)
	text := db.Serialize()

	restored, report, err := Deserialize(text, WithLogger(discardLogger()))
	require.NoError(t, err)

	assert.True(t, Equal(db, restored))
	assert.Equal(t, db.Fingerprint(), restored.Fingerprint())
	assert.Equal(t, text, restored.Serialize())
	assert.Equal(t, db.Statistics(), report.Statistics)
	assert.Zero(t, report.Errors())

	m, ok := restored.NumberedMethod(82600, direction)
	require.True(t, ok)
	assert.True(t, m.Static)
	assert.Equal(t, []int{0}, indexes(restored.Parameters(m)))
	assert.Equal(t, []int{1, 2}, indexes(restored.ParametersFor(1001)))
}

func TestCodec_SerializedLines(t *testing.T) {
	t.Parallel()

	db, _ := importSample(t)
	text := db.Serialize()

	for _, want := range []string{
		"class reobf:a srg:net/minecraft/util/Direction",
		"field id:176754 reobf:c srg:field_176754_o class:net/minecraft/util/Direction",
		"enum reobf:b value:UP class:net/minecraft/util/Direction",
		"method reobf:b deobf:tick class:net/minecraft/world/World signature:(Lnet/minecraft/world/World;)V",
		"method id:82600 reobf:a srg:func_82600_a class:net/minecraft/entity/Entity signature:(I)Lnet/minecraft/util/Direction; static:true",
		"constructor id:1000 class:net/minecraft/world/World signature:(La;)V",
		"parameter class:net/minecraft/util/Direction method_name:isSame method_signature:(Lnet/minecraft/util/Direction;)Z index:1",
		"parameter method_id:72838 class:net/minecraft/world/World index:4",
		"parameter constructor_id:1001 index:2",
	} {
		assert.Contains(t, text, want)
	}
}

func TestCodec_MarkersAreUnique(t *testing.T) {
	t.Parallel()

	db, _ := importSample(t)
	text := db.Serialize()

	all := []section{
		classSection, fieldSection, enumSection, namedMethodSection, numberedMethodSection,
		constructorSection, namedParamSection, numberedParamSection, constructorParamSection,
	}
	for _, s := range all {
		for _, marker := range []string{s.start(), s.end()} {
			n := 0
			for _, line := range text {
				if line == marker {
					n++
				}
			}
			assert.Equal(t, 1, n, marker)
		}
	}
}

func TestCodec_SectionOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	db, _ := importSample(t)
	bySection := sections(db.Serialize())

	order := []section{
		constructorParamSection, numberedParamSection, namedParamSection, constructorSection,
		numberedMethodSection, namedMethodSection, enumSection, fieldSection, classSection,
	}
	var shuffled []string
	for _, s := range order {
		shuffled = append(shuffled, bySection[s]...)
	}

	restored, _, err := Deserialize(shuffled, WithLogger(discardLogger()))
	require.NoError(t, err)
	assert.True(t, Equal(db, restored))
}

func TestCodec_MissingSections(t *testing.T) {
	t.Parallel()

	t.Run("absent section is empty", func(t *testing.T) {
		t.Parallel()
		db, _, err := Deserialize([]string{
			classSection.start(),
			"class reobf:a srg:pkg/A",
			classSection.end(),
		}, WithLogger(discardLogger()))
		require.NoError(t, err)
		assert.Equal(t, Statistics{Classes: 1}, db.Statistics())
	})

	t.Run("missing end marker runs to end of input", func(t *testing.T) {
		t.Parallel()
		db, report, err := Deserialize([]string{
			fieldSection.start(),
			"field id:1 reobf:b srg:field_1_b class:pkg/A",
			classSection.start(),
			"class reobf:a srg:pkg/A",
		}, WithLogger(discardLogger()))
		require.NoError(t, err)
		assert.Equal(t, 1, db.Statistics().Classes)
		assert.Equal(t, 1, db.Statistics().Fields)
		assert.Equal(t, 2, report.ErrorsIn(PassCodec), "the field section swallows the class section")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		db, report, err := Deserialize(nil, WithLogger(discardLogger()))
		require.NoError(t, err)
		assert.Equal(t, Statistics{}, db.Statistics())
		assert.Zero(t, report.Errors())
	})
}

func TestCodec_MalformedLinesAreCounted(t *testing.T) {
	t.Parallel()

	db, report, err := Deserialize([]string{
		classSection.start(),
		"class reobf:a srg:pkg/A",
		"klass a pkg/B",
		classSection.end(),
		fieldSection.start(),
		"field id:x reobf:b srg:field_x_b class:pkg/A",
		fieldSection.end(),
	}, WithLogger(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, 1, db.Statistics().Classes)
	assert.Zero(t, db.Statistics().Fields)
	require.Equal(t, 2, report.ErrorsIn(PassCodec))
	assert.Equal(t, 3, report.Diagnostics[0].Line)
	assert.Equal(t, 6, report.Diagnostics[1].Line)
}

func TestCodec_DanglingReferences(t *testing.T) {
	t.Parallel()

	classes := []string{
		classSection.start(),
		"class reobf:a srg:pkg/A",
		classSection.end(),
		namedMethodSection.start(),
		"method reobf:b deobf:run class:pkg/A signature:(I)V",
		namedMethodSection.end(),
	}

	tests := []struct {
		name  string
		lines []string
	}{
		{"field in unknown class", []string{
			fieldSection.start(), "field id:1 reobf:b srg:field_1_b class:pkg/Missing", fieldSection.end(),
		}},
		{"enum in unknown class", []string{
			enumSection.start(), "enum reobf:a value:UP class:pkg/Missing", enumSection.end(),
		}},
		{"named parameter with other descriptor", []string{
			namedParamSection.start(), "parameter class:pkg/A method_name:run method_signature:(J)V index:1", namedParamSection.end(),
		}},
		{"named parameter in other class", []string{
			namedParamSection.start(), "parameter class:pkg/Missing method_name:run method_signature:(I)V index:1", namedParamSection.end(),
		}},
		{"numbered parameter of unknown method", []string{
			numberedParamSection.start(), "parameter method_id:9 class:pkg/A index:1", numberedParamSection.end(),
		}},
		{"legacy numbered parameter of unknown method", []string{
			numberedParamSection.start(), "parameter method_id:9 index:1", numberedParamSection.end(),
		}},
		{"constructor parameter of unknown constructor", []string{
			constructorParamSection.start(), "parameter constructor_id:9 index:1", constructorParamSection.end(),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Deserialize(slices.Concat(classes, tt.lines), WithLogger(discardLogger()))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDanglingReference)
		})
	}
}

func TestCodec_LegacyNumberedParameterLine(t *testing.T) {
	t.Parallel()

	db, _, err := Deserialize([]string{
		classSection.start(),
		"class reobf:a srg:pkg/A",
		"class reobf:b srg:pkg/B",
		classSection.end(),
		numberedMethodSection.start(),
		"method id:5 reobf:x srg:func_5_x class:pkg/B signature:(I)V static:false",
		"method id:5 reobf:x srg:func_5_x class:pkg/A signature:(I)V static:false",
		numberedMethodSection.end(),
		numberedParamSection.start(),
		"parameter method_id:5 index:1",
		numberedParamSection.end(),
	}, WithLogger(discardLogger()))
	require.NoError(t, err)

	a, _ := db.Class("pkg/A")
	b, _ := db.Class("pkg/B")
	inA, ok := db.NumberedMethod(5, a)
	require.True(t, ok)
	inB, ok := db.NumberedMethod(5, b)
	require.True(t, ok)

	assert.Equal(t, []int{1}, indexes(db.Parameters(inA)))
	assert.Empty(t, db.Parameters(inB))
}
