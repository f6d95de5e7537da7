package cmd

import (
	"os"

	"github.com/spf13/cobra"

	tlbconfig "github.com/campfirium/obsidian-tile-line-base-sub002/core/config"
	tlblog "github.com/campfirium/obsidian-tile-line-base-sub002/core/log"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	cfg *tlbconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "tlb",
	Short: "TLB - formula engine for computed table columns",
	Long: `TLB (Tile Line Base) compiles and evaluates cell formulas for
computed table columns over plain note data.

Commands:
  eval     - Compile and evaluate one formula
  inspect  - Show tokens, RPN, and dependencies of a formula
  calc     - Run a render pass over rows from a data file
  play     - Interactive formula playground
  version  - Show version information`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text or json)")
}

// setup loads the optional config file and builds the default logger
// from flags and config before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		loaded, err := tlbconfig.LoadWithOptions(cfgFile, tlbconfig.LoadOptions{
			EnvPrefix: "TLB",
		})
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// CLI default is quiet; config raises it, --verbose wins.
	level := tlblog.LevelWarn
	if cfg != nil {
		if parsed, err := tlblog.ParseLevel(cfg.GetString("log.level", "")); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = tlblog.LevelDebug
	}

	format := tlblog.FormatText
	name := logFormat
	if name == "" && cfg != nil {
		name = cfg.GetString("log.format", "")
	}
	if name != "" {
		if parsed, err := tlblog.ParseFormat(name); err == nil {
			format = parsed
		}
	}

	tlblog.SetDefault(tlblog.NewWithConfig(tlblog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "tlb",
	}))

	return nil
}

// newEngine builds a formula engine honoring the loaded config.
func newEngine() (*formula.Engine, error) {
	opts := formula.Options{}
	if cfg != nil {
		opts.MaxFormulaLength = cfg.GetInt("engine.max_formula_length", 0)
	}
	return formula.NewEngine(opts)
}
