// Command csccbench benchmarks the connected-components engine over a
// sparse binary matrix, comparing algorithms (label propagation,
// union-find) across parallel execution substrates.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dimgerasimou/csc-components/bench"
	"github.com/dimgerasimou/csc-components/engine"
	"github.com/dimgerasimou/csc-components/matfile"
	"github.com/dimgerasimou/csc-components/substrate"
)

const (
	exitOK         = 0
	exitUsageError = 1
	exitMismatch   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		threads     int
		trials      int
		variantFlag int
		parallelism string
		matrixName  string
		fieldName   string
		jsonOutput  bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "csccbench <matrix-file>",
		Short: "benchmark connected-components counting over a sparse binary matrix",
		Args:  cobra.ExactArgs(1),
	}

	flags := cmd.Flags()
	flags.IntVarP(&threads, "threads", "t", 8, "number of worker threads")
	flags.IntVarP(&trials, "trials", "n", 3, "number of trials per configuration")
	flags.IntVarP(&variantFlag, "variant", "v", 0, "algorithm variant: 0=propagation, 1=unionfind")
	flags.StringVar(&parallelism, "parallelism", "threadpool", "sequential|threadpool|workstealing|forkjoin")
	flags.StringVar(&matrixName, "matrix-name", "Problem", "container matrix struct name")
	flags.StringVar(&fieldName, "field-name", "A", "container sparse field name")
	flags.BoolVar(&jsonOutput, "json", false, "emit a JSON report instead of text")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")

	exitCode := exitOK

	cmd.RunE = func(cmd *cobra.Command, cmdArgs []string) error {
		log, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		path := cmdArgs[0]

		mode, err := parseMode(parallelism)
		if err != nil {
			return err
		}
		variant, err := parseVariant(variantFlag)
		if err != nil {
			return err
		}

		view, err := matfile.Load(path, matrixName, fieldName)
		if err != nil {
			return err
		}

		cfg := bench.Config{
			Name:        fmt.Sprintf("%s/%s", variantName(variant), mode),
			Variant:     variant,
			Parallelism: mode,
			Threads:     threads,
			Trials:      trials,
		}

		results, err := bench.RunAll(log, view, []bench.Config{cfg})
		if err != nil {
			if isTrialMismatch(err) {
				exitCode = exitMismatch
			}
			return err
		}

		report := bench.BuildReport(path, view, threads, trials, results)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return report.WriteJSON(out)
		}
		return report.WriteText(out)
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csccbench:", err)
		if exitCode == exitOK {
			exitCode = exitUsageError
		}
		return exitCode
	}
	return exitOK
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func parseMode(s string) (substrate.Mode, error) {
	switch s {
	case "sequential":
		return substrate.Sequential, nil
	case "threadpool":
		return substrate.ThreadPool, nil
	case "workstealing":
		return substrate.WorkStealing, nil
	case "forkjoin":
		return substrate.ForkJoinPool, nil
	default:
		return 0, fmt.Errorf("csccbench: unknown --parallelism %q", s)
	}
}

func parseVariant(v int) (engine.Variant, error) {
	switch v {
	case 0:
		return engine.Propagation, nil
	case 1:
		return engine.UnionFind, nil
	default:
		return 0, fmt.Errorf("csccbench: unknown --variant %d", v)
	}
}

func variantName(v engine.Variant) string {
	if v == engine.UnionFind {
		return "unionfind"
	}
	return "propagation"
}

func isTrialMismatch(err error) bool {
	return errors.Is(err, bench.ErrTrialMismatch)
}
