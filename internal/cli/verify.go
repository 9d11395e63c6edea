package cli

import (
	"errors"
	"fmt"

	"github.com/mvp-joe/cartographer/internal/srg"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

// ErrDatabaseMismatch indicates the saved database differs from a fresh import.
var ErrDatabaseMismatch = errors.New("saved database does not match a fresh import")

var verifyContextFlag int

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the saved database against a fresh import",
	Long: `Verify imports the raw mapping files again, reads the saved database
file and compares the two table by table. On mismatch it prints a unified
diff of the serialized forms and exits non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runVerify(s, verifyContextFlag)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntVarP(&verifyContextFlag, "context", "c", 3, "Lines of diff context")
}

func runVerify(s *session, contextLines int) error {
	imported, _, err := importDatabase(s.cfg, s.logger, NewCLIProgressReporter(s.status, true))
	if err != nil {
		return err
	}
	saved, _, err := readDatabase(s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.cfg.Database.Path, err)
	}

	comparison := srg.Compare(saved, imported)
	fmt.Fprintln(s.out, "Comparison of saved and imported databases:")
	comparison.Print(s.out)
	if comparison.Equal() {
		fmt.Fprintf(s.out, "✓ Databases match (fingerprint %016x)\n", saved.Fingerprint())
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(saved.Serialize()),
		B:        withNewlines(imported.Serialize()),
		FromFile: s.cfg.Database.Path,
		ToFile:   "import",
		Context:  contextLines,
	})
	if err != nil {
		return fmt.Errorf("failed to diff databases: %w", err)
	}
	fmt.Fprint(s.out, diff)
	return ErrDatabaseMismatch
}

// withNewlines terminates every line so hunks render one entry per line.
func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
