package cli

import (
	"github.com/spf13/cobra"
)

var (
	importQuietFlag  bool
	importOutputFlag string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the raw mapping files and save the database",
	Long: `Import reads joined.tsrg, static_methods.txt and constructors.txt,
builds the cross-referenced SRG database and writes it to the database file,
replacing any existing one.

Lines that cannot be parsed are skipped and counted; use --verbose to log
each one.

Examples:
  # Import using .cartographer/config.yml
  cartographer import

  # Write the database somewhere else
  cartographer import --output build/srg_database.txt
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if importOutputFlag != "" {
			s.cfg.Database.Path = importOutputFlag
		}
		return runImport(s, importQuietFlag)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importQuietFlag, "quiet", "q", false, "Suppress progress bars")
	importCmd.Flags().StringVarP(&importOutputFlag, "output", "o", "", "Database file to write (overrides database.path)")
}

func runImport(s *session, quiet bool) error {
	_, err := importAndSave(s.cfg, s.out, s.logger, NewCLIProgressReporter(s.status, quiet))
	return err
}
