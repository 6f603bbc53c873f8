package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tapesort/internal/config"
	"github.com/roach88/tapesort/internal/engine"
	"github.com/roach88/tapesort/internal/tape"
)

func runSort(opts *RootOptions, inputPath, outputPath string, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load settings", err)
	}
	slog.Debug("settings loaded", "path", opts.ConfigPath,
		"ram_limit", cfg.RAMLimit, "run_compression", cfg.RunCompression)

	out := cmd.OutOrStdout()
	if !opts.Quiet {
		fmt.Fprintln(out, cfg)
	}

	in, err := tape.OpenFile[int32](inputPath, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open input tape", err)
	}
	defer in.Close()

	dst, err := tape.OpenFile[int32](outputPath, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open output tape", err)
	}
	defer dst.Close()

	var (
		printer  *progressPrinter
		progress engine.Progress
	)
	if !opts.Quiet {
		printer = newProgressPrinter(out)
		progress = printer.update
	}

	if err := engine.Sort(in, dst, progress); err != nil {
		if printer != nil {
			printer.finish()
		}
		return WrapExitError(ExitFailure, "sort failed", err)
	}
	if printer != nil {
		printer.finish()
	}

	fmt.Fprintln(out, "Done.")
	return nil
}

// setupLogging routes slog to stderr, debug level when verbose.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
