package srg

import (
	"fmt"
	"strconv"
	"strings"
)

const debugIndent = "    "

// DebugDump renders the database grouped by class for human inspection.
// The output is not meant to be read back.
func DebugDump(db *Database) []string {
	fieldsByClass := groupByOwner(db.Fields(), func(f Field) Class { return f.Owner })
	numberedByClass := groupByOwner(db.NumberedMethods(), func(m NumberedMethod) Class { return m.Owner })
	namedByClass := groupByOwner(db.NamedMethods(), func(m NamedMethod) Class { return m.Owner })
	constructorsByClass := groupByOwner(db.Constructors(), func(c Constructor) Class { return c.Owner })

	var out []string
	for _, c := range db.Classes() {
		out = append(out, fmt.Sprintf("class: srg = %s, reobf = %s", c.Name, c.ExternalName))

		for _, f := range fieldsByClass[c] {
			out = append(out, indent(1)+fmt.Sprintf("field: id = %d, srg = %s, reobf = %s", f.ID, f.Name, f.ExternalName))
		}
		for _, e := range db.EnumValuesOf(c) {
			out = append(out, indent(1)+fmt.Sprintf("enum: value = %s, reobf = %s", e.Name, e.ExternalName))
		}
		for _, m := range numberedByClass[c] {
			out = append(out, indent(1)+fmt.Sprintf("method: id = %d, srg = %s, reobf = %s, signature = %s, static = %t",
				m.ID, m.Name, m.ExternalName, m.Descriptor, m.Static))
			out = appendParams(out, db.Parameters(m))
		}
		for _, m := range namedByClass[c] {
			out = append(out, indent(1)+fmt.Sprintf("method: deobf = %s, reobf = %s, signature = %s",
				m.Name, m.ExternalName, m.Descriptor))
			out = appendParams(out, db.Parameters(m))
		}
		for _, ctor := range constructorsByClass[c] {
			out = append(out, indent(1)+fmt.Sprintf("constructor: id = %d, signature = %s", ctor.ID, ctor.Descriptor))
			out = appendParams(out, db.Parameters(ctor))
		}
	}
	return out
}

func appendParams(out []string, params []MethodParameter) []string {
	if len(params) == 0 {
		return out
	}
	indexes := make([]string, len(params))
	for i, p := range params {
		indexes[i] = strconv.Itoa(p.Index)
	}
	return append(out, indent(2)+"params: indexes = "+strings.Join(indexes, ", "))
}

func groupByOwner[T any](entries []T, owner func(T) Class) map[Class][]T {
	out := make(map[Class][]T)
	for _, e := range entries {
		c := owner(e)
		out[c] = append(out[c], e)
	}
	return out
}

func indent(n int) string { return strings.Repeat(debugIndent, n) }
