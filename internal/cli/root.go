// Package cli wires the tapesort commands: the root command performs
// the sort, gen fabricates input tapes, and view inspects tape files.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tapesort/internal/config"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// NewRootCommand creates the tapesort command tree. The root command
// itself runs the sort: tapesort <input-tape> <output-tape>.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tapesort <input-tape> <output-tape>",
		Short: "External merge sort for sequential tape files",
		Long: `Sort a tape of little-endian int32 records into a second tape.

The input is drained in chunks bounded by the configured RAM limit,
each chunk is sorted in memory and spilled to a temporary run file,
and the runs are merged into the output tape. Per-operation latencies
for the tape medium come from the settings file.

Example:
  tapesort input.tape output.tape
  tapesort --config bench.ini --quiet input.tape output.tape`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args[0], args[1], cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultFilename, "path to the key=value settings file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress settings summary and progress output")

	cmd.AddCommand(NewGenCommand(opts))
	cmd.AddCommand(NewViewCommand(opts))

	return cmd
}
