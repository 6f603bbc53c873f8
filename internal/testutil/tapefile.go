// Package testutil provides helpers for fabricating and inspecting
// tape files in tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tapesort/internal/config"
)

// QuietConfig returns settings with no latencies and a generous memory
// budget, suitable for most tests.
func QuietConfig() *config.Config {
	return &config.Config{
		RAMLimit:       1 << 20,
		RunCompression: config.CompressionNone,
	}
}

// BudgetConfig returns zero-latency settings whose memory budget holds
// exactly n int32 elements.
func BudgetConfig(n uint64) *config.Config {
	cfg := QuietConfig()
	cfg.RAMLimit = n * 4
	return cfg
}

// TapeFile writes values as little-endian int32 records to a fresh file
// under t.TempDir and returns its path.
func TapeFile(t *testing.T, values []int32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tape")
	WriteTapeFile(t, path, values)
	return path
}

// WriteTapeFile writes values as little-endian int32 records to path.
func WriteTapeFile(t *testing.T, path string, values []int32) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, values))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// ReadTapeFile decodes a whole tape file of little-endian int32
// records.
func ReadTapeFile(t *testing.T, path string) []int32 {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	values := make([]int32, len(raw)/4)
	require.NoError(t, binary.Read(bytes.NewReader(raw[:len(values)*4]), binary.LittleEndian, values))
	return values
}
