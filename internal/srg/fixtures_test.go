package srg

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleMappings covers every line kind. Classes a, b and c are referenced
// by their obfuscated names inside descriptors.
const sampleMappings = `a net/minecraft/util/Direction
	a DOWN
	b UP
	c field_176754_o
	a (I)La; func_82600_a
	b ()La; func_176734_d
	a (La;)Z isSame
b net/minecraft/world/World
	a field_72995_K
	a (JLa;D)V func_72838_d
	b (Lb;)V tick
	c (Lcom/Foo;Lzz;)V func_1_c
	lonely
c net/minecraft/entity/Entity
	a (I)La; func_82600_a
`

var sampleStatics = []string{
	"func_82600_a",
	"field_176754_o",
	"not a static",
}

var sampleConstructors = []string{
	"1000 net/minecraft/world/World (La;)V",
	"1001 net/minecraft/util/Direction (IJ)V",
	"1002 unknown/Cls ()V",
	"garbage",
}

var (
	direction = Class{Name: "net/minecraft/util/Direction", ExternalName: "a"}
	world     = Class{Name: "net/minecraft/world/World", ExternalName: "b"}
	entity    = Class{Name: "net/minecraft/entity/Entity", ExternalName: "c"}
)

func lines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func sampleInput() Input {
	return Input{
		Mappings:     lines(sampleMappings),
		Statics:      sampleStatics,
		Constructors: sampleConstructors,
	}
}

func importSample(t *testing.T, opts ...Option) (*Database, *Report) {
	t.Helper()
	db, report, err := Import(sampleInput(), append([]Option{WithLogger(discardLogger())}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, db)
	require.NotNil(t, report)
	return db, report
}

func indexes(params []MethodParameter) []int {
	out := make([]int, len(params))
	for i, p := range params {
		out[i] = p.Index
	}
	return out
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
