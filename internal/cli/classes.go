package cli

import (
	"fmt"

	"github.com/mvp-joe/cartographer/internal/query"
	"github.com/spf13/cobra"
)

var classesSuggestFlag int

// classesCmd represents the classes command
var classesCmd = &cobra.Command{
	Use:   "classes <pattern>",
	Short: "List classes matching a glob pattern",
	Long: `Classes lists every class whose canonical or obfuscated name matches the
glob pattern. '*' stays within one package, '**' crosses packages.

When nothing matches, the closest class names are suggested.

Examples:
  cartographer classes 'net/minecraft/world/*'
  cartographer classes '**/*Entity'
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runClasses(s, args[0], classesSuggestFlag)
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.Flags().IntVarP(&classesSuggestFlag, "suggest", "s", 5, "Number of suggestions when nothing matches")
}

func runClasses(s *session, pattern string, suggest int) error {
	db, err := s.database()
	if err != nil {
		return err
	}

	matches, err := query.Classes(db, pattern)
	if err != nil {
		return err
	}
	for _, c := range matches {
		fmt.Fprintf(s.out, "%s (reobf %s)\n", c.Name, c.ExternalName)
	}
	if len(matches) > 0 {
		fmt.Fprintf(s.out, "%s classes\n", formatNumber(len(matches)))
		return nil
	}

	fmt.Fprintf(s.out, "No classes match %q\n", pattern)
	suggestions := query.Suggest(db, pattern, suggest, query.DefaultMinSimilarity)
	if len(suggestions) == 0 {
		return nil
	}
	fmt.Fprintln(s.out, "Did you mean:")
	for _, sg := range suggestions {
		fmt.Fprintf(s.out, "  %s (%.2f)\n", sg.Class.Name, sg.Score)
	}
	return nil
}
