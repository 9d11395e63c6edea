package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/cartographer/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cartographer",
	Short: "Cartographer - SRG mapping database tool",
	Long: `Cartographer imports MCPConfig obfuscation mappings (joined.tsrg,
static_methods.txt, constructors.txt) into a cross-referenced database,
saves it as a text file, and answers queries against it.

Optional MCP CSV tables (fields.csv, methods.csv, params.csv) add
human-readable names to lookups.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .cartographer/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every skipped line")
}

// loadConfig reads configuration from --config or the working directory.
// --verbose overrides import.verbose.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Import.Verbose = true
	}
	return cfg, nil
}
