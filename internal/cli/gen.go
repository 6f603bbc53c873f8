package cli

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Count  uint64
	Output string
	Max    int32
	Seed   uint64
}

// NewGenCommand creates the gen command, which fabricates a tape of
// random records for testing and benchmarking.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a tape of random records",
		Long: `Generate a tape file of random little-endian int32 records.

Values are drawn uniformly from [1, max]. Pass --seed for a
reproducible tape.

Example:
  tapesort gen --count 1000000 --output input.tape
  tapesort gen --count 64 --max 100 --seed 7 --output small.tape`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(opts, cmd)
		},
	}

	cmd.Flags().Uint64VarP(&opts.Count, "count", "c", 0, "number of records to generate (required)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "tape file to write (required)")
	cmd.Flags().Int32Var(&opts.Max, "max", 1000, "upper bound of generated values, inclusive")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed; 0 derives one from the clock")
	_ = cmd.MarkFlagRequired("count")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runGen(opts *GenOptions, cmd *cobra.Command) error {
	if opts.Max < 1 {
		return WrapExitError(ExitFailure, "invalid --max", fmt.Errorf("must be at least 1, got %d", opts.Max))
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	f, err := os.Create(opts.Output)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to create tape file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := uint64(0); i < opts.Count; i++ {
		v := rng.Int32N(opts.Max) + 1
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return WrapExitError(ExitFailure, "failed to write tape file", err)
		}
	}
	if err := w.Flush(); err != nil {
		return WrapExitError(ExitFailure, "failed to write tape file", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d records to %s\n", opts.Count, opts.Output)
	return nil
}
