package tape

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/testutil"
)

func openTape(t *testing.T, values []int32) *File[int32] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tape")
	tp, err := OpenFile[int32](path, testutil.QuietConfig())
	require.NoError(t, err)
	t.Cleanup(func() { tp.Close() })
	require.NoError(t, tp.WriteBlock(values))
	tp.Rewind()
	return tp
}

func TestOpenFile_CreatesParentDirectories(t *testing.T) {
	cfg := testutil.QuietConfig()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "input.tape")

	tp, err := OpenFile[int32](path, cfg)
	require.NoError(t, err)
	defer tp.Close()

	require.FileExists(t, path)
	assert.Equal(t, path, tp.Name())
	assert.Same(t, cfg, tp.Config())
	assert.Equal(t, uint64(0), tp.Size())
	assert.True(t, tp.AtEnd())
}

func TestFile_WriteReadRoundTrip(t *testing.T) {
	tp := openTape(t, []int32{892, 262, 799, 202})

	values, err := tp.ReadBlock(4)
	require.NoError(t, err)
	assert.Equal(t, []int32{892, 262, 799, 202}, values)
	assert.Equal(t, uint64(4), tp.Size())
}

func TestFile_ReadDoesNotMoveHead(t *testing.T) {
	tp := openTape(t, []int32{7, 8})

	first, err := tp.Read()
	require.NoError(t, err)
	second, err := tp.Read()
	require.NoError(t, err)

	assert.Equal(t, int32(7), first)
	assert.Equal(t, int32(7), second)
	assert.Equal(t, uint64(0), tp.Position())
}

func TestFile_ReadNextAdvancesToEnd(t *testing.T) {
	tp := openTape(t, []int32{1, 2})

	v, err := tp.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
	assert.Equal(t, uint64(1), tp.Position())

	v, err = tp.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
	assert.True(t, tp.AtEnd())

	_, err = tp.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFile_RewindClearsEnd(t *testing.T) {
	tp := openTape(t, []int32{5})

	_, err := tp.ReadNext()
	require.NoError(t, err)
	require.True(t, tp.AtEnd())

	tp.Rewind()
	assert.False(t, tp.AtEnd())
	assert.Equal(t, uint64(0), tp.Position())

	v, err := tp.Read()
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestFile_ShiftBounds(t *testing.T) {
	tp := openTape(t, []int32{1, 2})

	assert.False(t, tp.Shift(Backward), "backward shift at position zero")
	assert.Equal(t, uint64(0), tp.Position())

	assert.True(t, tp.Shift(Forward))
	assert.Equal(t, uint64(1), tp.Position())

	assert.True(t, tp.Shift(Backward))
	assert.Equal(t, uint64(0), tp.Position())
}

func TestFile_ClosedHandle(t *testing.T) {
	tp := openTape(t, []int32{1})
	require.NoError(t, tp.Close())

	assert.False(t, tp.Shift(Forward))

	_, err := tp.Read()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, tp.Write(9), ErrClosed)

	assert.NoError(t, tp.Close(), "double close")
}

func TestFile_ReadBlockEnforcesBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.tape")
	tp, err := OpenFile[int32](path, testutil.BudgetConfig(2))
	require.NoError(t, err)
	defer tp.Close()

	require.NoError(t, tp.WriteBlock([]int32{1, 2}))
	require.NoError(t, tp.WriteBlock([]int32{3}))
	tp.Rewind()

	_, err = tp.ReadBlock(3)
	require.Error(t, err)
	assert.True(t, IsCapacityError(err))
	assert.Equal(t, uint64(0), tp.Position(), "no I/O before the capacity check")

	values, err := tp.ReadBlock(2)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, values)
}

func TestFile_WriteBlockEnforcesBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.tape")
	tp, err := OpenFile[int32](path, testutil.BudgetConfig(2))
	require.NoError(t, err)
	defer tp.Close()

	err = tp.WriteBlock([]int32{1, 2, 3})
	require.Error(t, err)
	assert.True(t, IsCapacityError(err))
	assert.Equal(t, uint64(0), tp.Size(), "no I/O before the capacity check")
}

func TestFile_ReadBlockStopsAtEnd(t *testing.T) {
	tp := openTape(t, []int32{4, 5, 6})

	values, err := tp.ReadBlock(10)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5, 6}, values)
	assert.True(t, tp.AtEnd())
}

func TestFile_ZeroValuesAreRealRecords(t *testing.T) {
	tp := openTape(t, []int32{3, 0, 0})

	values, err := tp.ReadBlock(10)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 0, 0}, values, "trailing zeros must not be trimmed")
}

func TestFile_SizeIgnoresTrailingPartialRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.tape")
	require.NoError(t, os.WriteFile(path, make([]byte, 9), 0o644))

	tp, err := OpenFile[int32](path, testutil.QuietConfig())
	require.NoError(t, err)
	defer tp.Close()

	assert.Equal(t, uint64(2), tp.Size())
}

func TestFile_ShiftDelayChargedOnFailure(t *testing.T) {
	cfg := testutil.QuietConfig()
	cfg.ShiftDelay = 5 * time.Millisecond

	path := filepath.Join(t.TempDir(), "test.tape")
	tp, err := OpenFile[int32](path, cfg)
	require.NoError(t, err)
	require.NoError(t, tp.Close())

	start := time.Now()
	ok := tp.Shift(Forward)
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
}

func TestFile_ReadDelayApplied(t *testing.T) {
	cfg := testutil.QuietConfig()
	cfg.ReadDelay = 5 * time.Millisecond

	path := filepath.Join(t.TempDir(), "test.tape")
	tp, err := OpenFile[int32](path, cfg)
	require.NoError(t, err)
	defer tp.Close()
	require.NoError(t, tp.WriteBlock([]int32{1, 2, 3}))
	tp.Rewind()

	start := time.Now()
	for range 3 {
		_, err := tp.ReadNext()
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
