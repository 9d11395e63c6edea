package srg

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"
)

// Pass names the stage of an import or deserialization that produced a
// diagnostic.
type Pass string

const (
	PassStatics      Pass = "statics"
	PassMappings     Pass = "mappings"
	PassConstructors Pass = "constructors"
	PassDescriptors  Pass = "descriptors"
	PassCodec        Pass = "codec"
)

var passOrder = map[Pass]int{
	PassStatics:      0,
	PassMappings:     1,
	PassConstructors: 2,
	PassDescriptors:  3,
	PassCodec:        4,
}

// Diagnostic is one skipped line or unresolved reference. Diagnostics never
// stop a batch.
type Diagnostic struct {
	Pass   Pass
	Line   int // 1-indexed, 0 when not tied to an input line
	Text   string
	Reason string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: L%d %s: %s", strings.ToUpper(string(d.Pass)), d.Line, d.Reason, d.Text)
	}
	return fmt.Sprintf("%s: %s: %s", strings.ToUpper(string(d.Pass)), d.Reason, d.Text)
}

// Report summarizes an import or deserialization.
type Report struct {
	StaticMethods int
	Constructors  int
	Statistics    Statistics
	Diagnostics   []Diagnostic
}

// Errors returns the total error tally.
func (r *Report) Errors() int { return len(r.Diagnostics) }

// ErrorsIn returns the number of diagnostics produced by pass p.
func (r *Report) ErrorsIn(p Pass) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Pass == p {
			n++
		}
	}
	return n
}

// Print writes the aggregate summary. Per-line detail is not included;
// callers that want it iterate Diagnostics.
func (r *Report) Print(w io.Writer, title string) {
	fmt.Fprintf(w, " === %s === \n", title)
	r.Statistics.Print(w)
	fmt.Fprintf(w, "Number of errors: %d\n", r.Errors())
	fmt.Fprintln(w, " === === == === === ")
}

// diagnostics collects Diagnostics from concurrent workers.
type diagnostics struct {
	mu      sync.Mutex
	items   []Diagnostic
	logger  *log.Logger
	verbose bool
}

func (d *diagnostics) add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, diag)
	if d.verbose {
		d.logger.Printf("!!! %s", diag)
	}
}

// sorted returns the collected diagnostics ordered by pass then line.
func (d *diagnostics) sorted() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := slices.Clone(d.items)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(passOrder[a.Pass], passOrder[b.Pass]),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Text, b.Text),
			cmp.Compare(a.Reason, b.Reason),
		)
	})
	return out
}
