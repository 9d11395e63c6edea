package srg

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/maypok86/otter"
)

// descriptorResolver rewrites short obfuscated class names inside method
// descriptors to canonical class names. It needs the complete class table.
type descriptorResolver struct {
	byExternal map[string]Class
	byName     map[string]Class
	diags      *diagnostics

	// cache maps a raw descriptor to its fully resolved form. Descriptors
	// with an unresolved token are never cached so each occurrence is
	// reported.
	cache *otter.Cache[string, string]
}

func newDescriptorResolver(classes map[string]Class, diags *diagnostics, cacheSize int) (*descriptorResolver, error) {
	r := &descriptorResolver{
		byExternal: indexByExternalName(classes),
		byName:     classes,
		diags:      diags,
	}
	if cacheSize > 0 {
		cache, err := otter.MustBuilder[string, string](cacheSize).Build()
		if err != nil {
			return nil, err
		}
		r.cache = &cache
	}
	return r, nil
}

func (r *descriptorResolver) close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// needsResolution reports whether a reference token looks like a short
// obfuscated name: no package separator and no uppercase letter.
func needsResolution(name string) bool {
	if strings.Contains(name, "/") {
		return false
	}
	return !strings.ContainsFunc(name, unicode.IsUpper)
}

func (r *descriptorResolver) lookup(name string) (Class, bool) {
	if c, ok := r.byExternal[name]; ok {
		return c, true
	}
	c, ok := r.byName[name]
	return c, ok
}

// resolve returns m with its descriptor rewritten. Unknown tokens are left
// as written and reported.
func (r *descriptorResolver) resolve(m Method) Method {
	desc := DescriptorOf(m)
	if r.cache != nil {
		if resolved, ok := r.cache.Get(desc); ok {
			return m.withDescriptor(resolved)
		}
	}

	missed := false
	resolved := referenceTypePattern.ReplaceAllStringFunc(desc, func(token string) string {
		name := token[1 : len(token)-1]
		if !needsResolution(name) {
			return token
		}
		if c, ok := r.lookup(name); ok {
			return "L" + c.Name + ";"
		}
		missed = true
		r.diags.add(Diagnostic{Pass: PassDescriptors, Text: fmt.Sprint(m), Reason: "cannot find deobf class name for " + name})
		return token
	})

	if r.cache != nil && !missed {
		r.cache.Set(desc, resolved)
	}
	return m.withDescriptor(resolved)
}

// resolveAll resolves every method in parallel. Output order matches input.
func resolveAll[M Method](r *descriptorResolver, methods []M, workers int) []M {
	out := make([]M, len(methods))
	_ = forEachPartition(len(methods), workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = r.resolve(methods[i]).(M)
		}
		return nil
	})
	return out
}

// indexByExternalName indexes classes by reobfuscated name. When two
// classes share an external name the one with the smaller canonical name
// wins.
func indexByExternalName(classes map[string]Class) map[string]Class {
	out := make(map[string]Class, len(classes))
	for _, name := range sortedKeys(classes) {
		c := classes[name]
		if _, ok := out[c.ExternalName]; !ok {
			out[c.ExternalName] = c
		}
	}
	return out
}
