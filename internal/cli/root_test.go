package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/testutil"
)

// execute runs the command tree with the given arguments, capturing
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeSettings writes a zero-latency settings file and returns its
// path.
func writeSettings(t *testing.T, extra string) string {
	t.Helper()
	content := `ram_limit = 1048576
read_delay = 0
write_delay = 0
tape_shift_delay = 0
tape_rewind_delay = 0
` + extra
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_WrongArgumentCount(t *testing.T) {
	_, err := execute(t, "only-one.tape")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRoot_SortsTape(t *testing.T) {
	cfgPath := writeSettings(t, "")
	in := testutil.TapeFile(t, []int32{892, 262, 799, 202})
	out := filepath.Join(t.TempDir(), "out.tape")

	output, err := execute(t, "--config", cfgPath, "--quiet", in, out)
	require.NoError(t, err)

	assert.Contains(t, output, "Done.")
	assert.Equal(t, []int32{202, 262, 799, 892}, testutil.ReadTapeFile(t, out))
}

func TestRoot_MultiRunSort(t *testing.T) {
	// 12 bytes of budget force three runs over eight records.
	cfgPath := writeSettings(t, "ram_limit = 12\n")
	in := testutil.TapeFile(t, []int32{5, 1, 4, 1, 5, 9, 2, 6})
	out := filepath.Join(t.TempDir(), "out.tape")

	_, err := execute(t, "--config", cfgPath, "--quiet", in, out)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 1, 2, 4, 5, 5, 6, 9}, testutil.ReadTapeFile(t, out))
}

func TestRoot_PrintsSummaryAndProgress(t *testing.T) {
	cfgPath := writeSettings(t, "")
	in := testutil.TapeFile(t, []int32{3, 1, 2})
	out := filepath.Join(t.TempDir(), "out.tape")

	output, err := execute(t, "--config", cfgPath, in, out)
	require.NoError(t, err)

	assert.Contains(t, output, "ram limit")
	assert.Contains(t, output, "Reading tape...")
	assert.Contains(t, output, "Sorting...")
	assert.Contains(t, output, "Done.")
}

func TestRoot_MissingSettingsFile(t *testing.T) {
	in := testutil.TapeFile(t, []int32{1})
	out := filepath.Join(t.TempDir(), "out.tape")

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.ini"), in, out)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load settings")
}

func TestRoot_BudgetTooSmall(t *testing.T) {
	cfgPath := writeSettings(t, "ram_limit = 2\n")
	in := testutil.TapeFile(t, []int32{2, 1})
	out := filepath.Join(t.TempDir(), "out.tape")

	_, err := execute(t, "--config", cfgPath, "--quiet", in, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort failed")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "msg", assert.AnError)))
}
