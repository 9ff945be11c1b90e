package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/icumsg/catalog"
	"github.com/dhamidi/icumsg/icu"
)

const version = "0.1.0"

var log = commonlog.GetLogger("icumsg")

// global flags
var (
	verbosity   int
	logFile     string
	symbolsFile string
	noTags      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "icu",
		Short:         "Parse and check ICU MessageFormat messages",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFile != "" {
				commonlog.Configure(verbosity, &logFile)
			} else {
				commonlog.Configure(verbosity, nil)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&logFile, "log", "", "write logs to file instead of stderr")
	flags.StringVar(&symbolsFile, "symbols", "", "parser symbols file (.toml, .yaml or .json)")
	flags.BoolVar(&noTags, "no-tags", false, "treat tag characters as plain text")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "icu:", err)
		os.Exit(1)
	}
}

// loadSymbols returns the symbols selected by the global flags.
func loadSymbols() (icu.Symbols, error) {
	symbols := icu.DefaultSymbols()
	if symbolsFile != "" {
		var err error
		if symbols, err = catalog.LoadSymbols(symbolsFile); err != nil {
			return symbols, err
		}
	}
	if noTags {
		symbols.AllowTags = false
	}
	return symbols, nil
}

func newParser() (*icu.Parser, icu.Symbols, error) {
	symbols, err := loadSymbols()
	if err != nil {
		return nil, symbols, err
	}
	p, err := icu.NewParser(symbols)
	if err != nil {
		return nil, symbols, fmt.Errorf("symbols: %w", err)
	}
	return p, symbols, nil
}

// loadCatalogs loads files and directories. Load failures are printed and
// reported through failed; the catalogs that did load are returned.
func loadCatalogs(paths []string) (catalogs []*catalog.Catalog, failed bool, err error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, false, err
		}

		if info.IsDir() {
			cs, err := catalog.LoadDir(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed = true
			}
			catalogs = append(catalogs, cs...)
			continue
		}

		c, err := catalog.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, failed, nil
}
