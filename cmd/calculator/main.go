// Command calculator evaluates arithmetic expressions given as arguments or
// read from a file or standard input.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// errFailed reports that at least one expression failed to evaluate. The
// failures themselves are already in the output.
var errFailed = errors.New("evaluation failed")

func main() {
	if os.Getenv("DEBUG") != "" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			slog.Error("calculator", "error", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculator [flags] [expression ...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calculator evaluates arithmetic expressions over integers, reals, and text.

Operators are + - * / % with the usual precedence, and ( ) group. A word that
is not a number or a defined variable is text: "hi * 3" is "hihihi".
Without arguments or --in, expressions are read from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	f := cmd.Flags()
	f.String("in", "", "input file, - for stdin (default stdin if no args given)")
	f.String("config", "", "YAML configuration file")
	f.StringArray("given", nil, "name=value variable definition (any number of times)")
	f.BoolP("lines", "n", false, "evaluate separate input lines as separate expressions")
	f.Bool("echo", false, "print each expression before its result")
	f.Bool("table", false, "print results as a table")
	f.Bool("debug", false, "log debug messages")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	given, err := cmd.Flags().GetStringArray("given")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd.Flags(), given)
	if err != nil {
		return err
	}
	if cfg.debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	srcs, err := inputs(cfg, cmd.InOrStdin(), args)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	out := newPrinter(cmd.OutOrStdout(), cfg.echo, cfg.table)
	failed := false
	for _, src := range srcs {
		v, err := cfg.ctx.EvalString(src)
		if err != nil {
			failed = true
			slog.Debug("evaluation failed", "expression", src, "error", err)
		} else {
			slog.Debug("evaluated", "expression", src, "result", v)
		}
		out.add(src, v, err)
	}
	out.flush()
	if failed {
		return errFailed
	}
	return nil
}
