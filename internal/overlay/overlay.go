// Package overlay reads the flat CSV tables that assign human-readable names
// to srg ids. Overlay entries reference core entries by id only; nothing is
// cross-checked against a mapping database.
package overlay

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"slices"
)

// Side is the distribution an overlay entry applies to.
type Side int

const (
	SideClient Side = iota
	SideDedicatedServer
	SideBoth
)

// ParseSide decodes the numeric side column: "0" client, "1" dedicated
// server, "2" both.
func ParseSide(s string) (Side, error) {
	switch s {
	case "0":
		return SideClient, nil
	case "1":
		return SideDedicatedServer, nil
	case "2":
		return SideBoth, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

func (s Side) String() string {
	switch s {
	case SideClient:
		return "client"
	case SideDedicatedServer:
		return "dedicated_server"
	case SideBoth:
		return "both"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Kind tells fields and methods apart.
type Kind int

const (
	KindField Kind = iota
	KindMethod
)

func (k Kind) String() string {
	if k == KindField {
		return "field"
	}
	return "method"
}

// Member is a named field or method.
type Member struct {
	Kind        Kind
	ID          int
	Name        string
	Side        Side
	Description string
}

func (m Member) String() string {
	return fmt.Sprintf("%s[id=%d, name=%s, side=%s, desc=%s]", m.Kind, m.ID, m.Name, m.Side, m.Description)
}

// Parameter names one parameter slot of a method or constructor.
type Parameter struct {
	MethodID    int
	Index       int
	Name        string
	Side        Side
	Constructor bool
}

func (p Parameter) String() string {
	kind := "method"
	if p.Constructor {
		kind = "constructor"
	}
	return fmt.Sprintf("Parameter[%s=%d, index=%d, name=%s, side=%s]", kind, p.MethodID, p.Index, p.Name, p.Side)
}

// Database is the immutable overlay. It is safe for concurrent reads.
type Database struct {
	fields  map[int]Member
	methods map[int]Member
	params  map[int][]Parameter
	skipped int
}

// LookupByID returns the field with id, else the method with id.
func (db *Database) LookupByID(id int) (Member, bool) {
	if f, ok := db.fields[id]; ok {
		return f, true
	}
	m, ok := db.methods[id]
	return m, ok
}

// ParametersFor returns the named parameters of the method or constructor
// with id, ordered by slot index.
func (db *Database) ParametersFor(id int) []Parameter {
	return slices.Clone(db.params[id])
}

// Fields returns the number of named fields.
func (db *Database) Fields() int { return len(db.fields) }

// Methods returns the number of named methods.
func (db *Database) Methods() int { return len(db.methods) }

// Parameters returns the number of named parameters.
func (db *Database) Parameters() int {
	n := 0
	for _, params := range db.params {
		n += len(params)
	}
	return n
}

// Skipped returns the number of data lines that did not parse.
func (db *Database) Skipped() int { return db.skipped }

// Print writes the import summary.
func (db *Database) Print(w io.Writer) {
	fmt.Fprintln(w, " === Overlay Import === ")
	fmt.Fprintf(w, "Fields: %d\n", db.Fields())
	fmt.Fprintf(w, "Methods: %d\n", db.Methods())
	fmt.Fprintf(w, "Parameters: %d\n", db.Parameters())
	fmt.Fprintln(w, " === === == === === ")
}

func sortParameters(params map[int][]Parameter) {
	for _, list := range params {
		slices.SortFunc(list, func(a, b Parameter) int {
			return cmp.Or(
				cmp.Compare(a.Index, b.Index),
				cmp.Compare(a.Name, b.Name),
			)
		})
	}
}

func logSkip(logger *log.Logger, verbose bool, file string, line int, text string, reason error) {
	if verbose {
		logger.Printf("!!! OVERLAY %s: L%d %v: %s", file, line, reason, text)
	}
}
