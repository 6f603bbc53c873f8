package cli

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// ViewOptions holds flags for the view command.
type ViewOptions struct {
	*RootOptions
	Verify bool
	Peek   int
}

// NewViewCommand creates the view command, which prints a summary of a
// tape file's contents.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view <tape-file>",
		Short: "Inspect a tape file",
		Long: `Print the leading and trailing records of a tape file, its record
count, and whether its contents are sorted.

Example:
  tapesort view output.tape
  tapesort view --peek 5 --verify=false input.tape`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", true, "report whether the tape is sorted")
	cmd.Flags().IntVar(&opts.Peek, "peek", 10, "records to show from each end of the tape")

	return cmd
}

func runView(opts *ViewOptions, path string, cmd *cobra.Command) error {
	values, err := readAll(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read tape file", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tape: [ %s ] (%d values)\n", peek(values, opts.Peek), len(values))
	if opts.Verify {
		if slices.IsSorted(values) {
			fmt.Fprintln(out, "Tape is sorted.")
		} else {
			fmt.Fprintln(out, "Tape is NOT sorted.")
		}
	}
	return nil
}

// readAll decodes a whole tape file; a trailing partial record is
// ignored, matching the tape size rule.
func readAll(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	values := make([]int32, info.Size()/4)
	if err := binary.Read(f, binary.LittleEndian, values); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return values, nil
}

// peek renders up to n records from each end of the tape, eliding the
// middle.
func peek(values []int32, n int) string {
	format := func(vs []int32) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return strings.Join(parts, " ")
	}
	if n <= 0 || len(values) <= 2*n {
		return format(values)
	}
	return format(values[:n]) + " ... " + format(values[len(values)-n:])
}
