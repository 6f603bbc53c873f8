package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/testutil"
)

func TestGen_WritesRequestedCount(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.tape")

	output, err := execute(t, "gen", "--count", "32", "--output", out, "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, output, "Generated 32 records")

	values := testutil.ReadTapeFile(t, out)
	require.Len(t, values, 32)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, int32(1))
		assert.LessOrEqual(t, v, int32(1000))
	}
}

func TestGen_SeededDeterminism(t *testing.T) {
	a := filepath.Join(t.TempDir(), "a.tape")
	b := filepath.Join(t.TempDir(), "b.tape")

	_, err := execute(t, "gen", "--count", "100", "--output", a, "--seed", "42")
	require.NoError(t, err)
	_, err = execute(t, "gen", "--count", "100", "--output", b, "--seed", "42")
	require.NoError(t, err)

	rawA, err := os.ReadFile(a)
	require.NoError(t, err)
	rawB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, rawA, rawB)
}

func TestGen_MaxBound(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.tape")

	_, err := execute(t, "gen", "--count", "100", "--max", "3", "--output", out, "--seed", "1")
	require.NoError(t, err)

	for _, v := range testutil.ReadTapeFile(t, out) {
		assert.GreaterOrEqual(t, v, int32(1))
		assert.LessOrEqual(t, v, int32(3))
	}
}

func TestGen_InvalidMax(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.tape")

	_, err := execute(t, "gen", "--count", "1", "--max", "0", "--output", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --max")
}

func TestGen_RequiresFlags(t *testing.T) {
	_, err := execute(t, "gen")
	require.Error(t, err)
}
