package srg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for descriptor resolution:
// - Short lowercase tokens are rewritten to the canonical class name
// - Tokens with a package separator or an uppercase letter are left alone
// - A token naming a canonical class directly is accepted
// - Unknown tokens stay as written and produce one diagnostic each time
// - Constructors keep their descriptors as written by the import
// - The memo does not change results

func newTestResolver(t *testing.T, cacheSize int) (*descriptorResolver, *diagnostics) {
	t.Helper()
	classes := map[string]Class{
		"foo":                   {Name: "foo", ExternalName: "x"},
		"net/minecraft/Bar":     {Name: "net/minecraft/Bar", ExternalName: "a"},
		"net/minecraft/BarTwin": {Name: "net/minecraft/BarTwin", ExternalName: "a"},
	}
	diags := &diagnostics{logger: discardLogger()}
	r, err := newDescriptorResolver(classes, diags, cacheSize)
	require.NoError(t, err)
	t.Cleanup(r.close)
	return r, diags
}

func TestNeedsResolution(t *testing.T) {
	t.Parallel()

	assert.True(t, needsResolution("a"))
	assert.True(t, needsResolution("foo"))
	assert.True(t, needsResolution("abc$1"))
	assert.False(t, needsResolution("com/Foo"))
	assert.False(t, needsResolution("pkg/a"))
	assert.False(t, needsResolution("Foo"))
	assert.False(t, needsResolution("aB"))
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc string
		want string
	}{
		{"external name", "(La;)V", "(Lnet/minecraft/Bar;)V"},
		{"canonical name", "(Lfoo;)V", "(Lfoo;)V"},
		{"external name of lowercase class", "(Lx;I)Lx;", "(Lfoo;I)Lfoo;"},
		{"qualified token untouched", "(Lcom/Foo;)V", "(Lcom/Foo;)V"},
		{"uppercase token untouched", "(LFoo;)V", "(LFoo;)V"},
		{"primitives only", "(IJ)Z", "(IJ)Z"},
		{"mixed", "(JLa;DLcom/Foo;)La;", "(JLnet/minecraft/Bar;DLcom/Foo;)Lnet/minecraft/Bar;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, diags := newTestResolver(t, DefaultDescriptorCacheSize)
			m := NamedMethod{Signature: Signature{Descriptor: tt.desc}, Name: "m", ExternalName: "m"}

			got := r.resolve(m)

			assert.Equal(t, tt.want, DescriptorOf(got))
			assert.Empty(t, diags.sorted())
		})
	}
}

func TestResolver_DuplicateExternalNamePicksSmallestCanonical(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t, 0)
	c, ok := r.lookup("a")
	require.True(t, ok)
	assert.Equal(t, "net/minecraft/Bar", c.Name)
}

func TestResolver_MissIsReportedEveryTime(t *testing.T) {
	t.Parallel()

	r, diags := newTestResolver(t, DefaultDescriptorCacheSize)
	m := NumberedMethod{Signature: Signature{Descriptor: "(Lzz;La;)V"}, ID: 1, Name: "func_1_a"}

	first := r.resolve(m)
	second := r.resolve(m)

	assert.Equal(t, "(Lzz;Lnet/minecraft/Bar;)V", DescriptorOf(first))
	assert.Equal(t, first, second)

	items := diags.sorted()
	require.Len(t, items, 2, "descriptors with misses are not memoized")
	assert.Equal(t, PassDescriptors, items[0].Pass)
	assert.Equal(t, "cannot find deobf class name for zz", items[0].Reason)
	assert.Contains(t, items[0].Text, "func_1_a")
}

func TestResolver_CacheDoesNotChangeResults(t *testing.T) {
	t.Parallel()

	cached, _ := importSample(t)
	uncached, _ := importSample(t, WithDescriptorCacheSize(0))

	assert.True(t, Equal(cached, uncached))
}

func TestImport_ResolvesDescriptors(t *testing.T) {
	t.Parallel()

	db, report := importSample(t)

	m, ok := db.NumberedMethod(72838, world)
	require.True(t, ok)
	assert.Equal(t, "(JLnet/minecraft/util/Direction;D)V", m.Descriptor)

	isSame := db.NamedMethodsByName("isSame")
	require.Len(t, isSame, 1)
	assert.Equal(t, "(Lnet/minecraft/util/Direction;)Z", isSame[0].Descriptor)

	partial, ok := db.NumberedMethod(1, world)
	require.True(t, ok)
	assert.Equal(t, "(Lcom/Foo;Lzz;)V", partial.Descriptor)
	assert.Equal(t, 1, report.ErrorsIn(PassDescriptors))

	ctor, ok := db.Constructor(1000)
	require.True(t, ok)
	assert.Equal(t, "(La;)V", ctor.Descriptor, "constructor descriptors are not resolved")
}
