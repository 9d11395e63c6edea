// Package access formats access-transformer lines that widen core mapping
// entries to public.
package access

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/cartographer/internal/srg"
)

// Line returns the access-transformer line for entry. A non-empty name is
// appended as a trailing comment on fields and numbered methods, the entries
// that an overlay can name. Entries that cannot be transformed (enum values,
// parameters) yield false.
func Line(entry srg.Entry, name string) (string, bool) {
	comment := ""
	if name != "" {
		comment = " # " + name
	}

	switch e := entry.(type) {
	case srg.Class:
		return "public " + dotted(e.Name), true
	case srg.Field:
		return fmt.Sprintf("public %s %s", dotted(e.Owner.Name), e.Name) + comment, true
	case srg.NamedMethod:
		return fmt.Sprintf("public %s %s%s", dotted(e.Owner.Name), e.Name, e.Descriptor), true
	case srg.NumberedMethod:
		return fmt.Sprintf("public %s %s%s", dotted(e.Owner.Name), e.Name, e.Descriptor) + comment, true
	case srg.Constructor:
		return fmt.Sprintf("public %s <init>%s", dotted(e.Owner.Name), e.Descriptor), true
	}
	return "", false
}

func dotted(name string) string { return strings.ReplaceAll(name, "/", ".") }
