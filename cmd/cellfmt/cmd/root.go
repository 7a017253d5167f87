// Package cmd holds the cellfmt subcommands.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cellformat "github.com/TsubasaBE/go-cellformat"
	"github.com/TsubasaBE/go-cellformat/internal/config"
)

// app carries the state shared by every subcommand.  It is filled in by the
// root command's PersistentPreRunE.
type app struct {
	cfgFile   string
	logLevel  string
	date1904  bool
	cacheSize int

	cfg config.Config
	log *logrus.Logger
	eng *cellformat.Engine
}

// Execute runs the cellfmt command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "cellfmt",
		Short: "Render cell values with spreadsheet number formats",
		Long: `cellfmt applies spreadsheet number-format strings to cell values and
prints the text and color a spreadsheet application would display.

Commands:
  format   - apply a format string to one value
  builtin  - list or apply the built-in formats by numFmtId
  tokens   - show how a format string is parsed
  check    - run YAML conformance suites`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&a.date1904, "date1904", false, "use the 1904 date system")
	rootCmd.PersistentFlags().IntVar(&a.cacheSize, "cache-size", 0, "bound the parsed-format cache (0 = unbounded)")

	rootCmd.AddCommand(
		newFormatCmd(a),
		newBuiltinCmd(a),
		newTokensCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger and engine.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		var err error
		if cfg, err = config.Load(a.cfgFile); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("date1904") {
		cfg.Engine.Date1904 = a.date1904
	}
	if flags.Changed("cache-size") {
		cfg.Engine.CacheSize = a.cacheSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := cfg.Log.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.eng = cellformat.New(cellformat.WithOptions(cfg.EngineOptions(log)))
	log.WithFields(logrus.Fields{
		"date1904":   cfg.Engine.Date1904,
		"cache_size": cfg.Engine.CacheSize,
	}).Debug("cellfmt: engine ready")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cellfmt %s\n", cellformat.Version)
		},
	}
}
