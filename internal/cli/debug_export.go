package cli

import (
	"fmt"
	"time"

	"github.com/mvp-joe/cartographer/internal/srg"
	"github.com/spf13/cobra"
)

// debugExportCmd represents the debug-export command
var debugExportCmd = &cobra.Command{
	Use:   "debug-export <file>",
	Short: "Write a human-readable dump of the database",
	Long: `Debug-export writes every class with its fields, enum values, methods,
constructors and parameter slots, indented for reading. The output cannot be
read back; use the database file for that.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runDebugExport(s, args[0])
	},
}

func init() {
	rootCmd.AddCommand(debugExportCmd)
}

func runDebugExport(s *session, output string) error {
	db, err := s.database()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Writing debug SRG export to %s...\n", output)
	start := time.Now()
	if err := writeLines(output, srg.DebugDump(db)); err != nil {
		return fmt.Errorf("failed to write debug export: %w", err)
	}
	fmt.Fprintf(s.out, "Time elapsed for debug export: %s\n", time.Since(start))
	return nil
}
