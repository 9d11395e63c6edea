package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long: `Stats prints entry counts and a content fingerprint of the database.
Two databases with the same fingerprint hold the same mappings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runStats(s)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(s *session) error {
	db, err := s.database()
	if err != nil {
		return err
	}

	stats := db.Statistics()
	stats.Print(s.out)
	fmt.Fprintf(s.out, "Entries: %s\n", formatNumber(stats.Classes+stats.Fields+stats.EnumValues+
		stats.NumberedMethods+stats.NamedMethods+stats.Constructors))
	fmt.Fprintf(s.out, "Fingerprint: %016x\n", db.Fingerprint())

	ov, err := s.overlay()
	if err != nil {
		return err
	}
	if ov != nil {
		ov.Print(s.out)
		if ov.Skipped() > 0 {
			fmt.Fprintf(s.out, "Skipped overlay lines: %d\n", ov.Skipped())
		}
	}
	return nil
}
