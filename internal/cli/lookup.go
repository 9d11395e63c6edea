package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mvp-joe/cartographer/internal/access"
	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <id>",
	Short: "Look up an entry by srg id",
	Long: `Lookup finds the field, method or constructor carrying the srg id and
prints it with its parameter slots, its human name from the overlay (when
configured) and the access-transformer line that makes it public.

Fields win over methods and methods over constructors when ids collide.

Examples:
  cartographer lookup 72838
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runLookup(s, id)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(s *session, id int) error {
	db, err := s.database()
	if err != nil {
		return err
	}
	ov, err := s.overlay()
	if err != nil {
		return err
	}

	entry, ok := db.LookupByID(id)
	if !ok {
		fmt.Fprintln(s.out, "No entry found for that ID!")
		return nil
	}
	fmt.Fprintf(s.out, "Entry for ID %d: %s\n", id, entry)

	if params := db.ParametersFor(id); len(params) > 0 {
		indexes := make([]string, len(params))
		for i, p := range params {
			indexes[i] = strconv.Itoa(p.Index)
		}
		fmt.Fprintf(s.out, "   Parameters: indexes = %s\n", strings.Join(indexes, ", "))
	}

	name := ""
	if ov != nil {
		if m, ok := ov.LookupByID(id); ok {
			name = m.Name
			fmt.Fprintf(s.out, "   MCP entry: %s\n", m)
		}
		for _, p := range ov.ParametersFor(id) {
			fmt.Fprintf(s.out, "   MCP parameter: %s\n", p)
		}
	}

	if at, ok := access.Line(entry, name); ok {
		fmt.Fprintf(s.out, "   Access Transformer: %s\n", at)
	}
	return nil
}
