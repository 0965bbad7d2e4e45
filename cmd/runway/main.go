package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/storage"
	"github.com/spf13/cobra"
)

// cliLogger implements calculation.Logger using the standard log package
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "runway %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "runway",
		Short: "Retirement runway calculator",
		Long: `Projects how long a retirement corpus lasts under inflation-adjusted expenses
and planned one-time expenses.

Without an input file, commands work on the configuration saved by the
interactive form (runway-tui) or by "runway config import".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("store", "", "Path to the saved configuration store (default: user config dir)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(projectCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())

	return root
}

func debugEnabled(cmd *cobra.Command) bool {
	debugMode, _ := cmd.Flags().GetBool("debug")
	return debugMode
}

// newEngine returns a calculation engine, logging when --debug is set.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugEnabled(cmd) {
		engine.SetLogger(cliLogger{})
	}
	return engine
}

// openStore opens the snapshot store named by --store or the default one.
func openStore(cmd *cobra.Command) (*storage.Store, string, error) {
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		p, err := storage.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	store := storage.NewStore(storage.NewFileKV(path))
	if debugEnabled(cmd) {
		store.Logger = cliLogger{}
	}
	return store, path, nil
}

// loadInput reads the configuration from the file in args, or from the
// store when no file is given.
func loadInput(cmd *cobra.Command, args []string) (*domain.CalculatorConfig, error) {
	if len(args) > 0 {
		return config.NewInputParser().LoadFromFile(args[0])
	}

	store, _, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	cfg := store.Load()
	return &cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
