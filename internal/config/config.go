// Package config loads tapesort settings from a flat key=value file.
//
// The file format is deliberately primitive: one `key=value` pair per
// line, whitespace around keys and values ignored, lines without `=`
// skipped, unrecognized keys skipped. Delays are integer microseconds.
// A missing file or an unparsable value for a recognized key is a fatal
// startup error; there is no partial configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultFilename is the settings file loaded from the working directory
// when no explicit path is given.
const DefaultFilename = "config.ini"

// Codecs accepted for the run_compression key.
const (
	CompressionNone   = "none"
	CompressionSnappy = "snappy"
)

// Config holds the tape simulation settings: the working-memory budget
// and the per-operation latencies of the medium. A Config is immutable
// after Load and is shared by pointer by every tape it is handed to.
type Config struct {
	// RAMLimit is the working-memory budget in bytes. It bounds how many
	// elements any component may buffer at once; see Capacity.
	RAMLimit uint64

	// ReadDelay and WriteDelay are charged on every single-element read
	// and write against a tape.
	ReadDelay  time.Duration
	WriteDelay time.Duration

	// ShiftDelay is charged on every one-element head movement,
	// RewindDelay on every rewind to position zero.
	ShiftDelay  time.Duration
	RewindDelay time.Duration

	// RunCompression selects the codec for temporary run files spilled
	// during an external sort: CompressionNone or CompressionSnappy.
	// Runs are merge scratch space, not tapes, so no delay applies to
	// them either way.
	RunCompression string
}

func defaults() *Config {
	return &Config{
		RAMLimit:       1 << 30, // 1 GiB
		ReadDelay:      2 * time.Microsecond,
		WriteDelay:     2 * time.Microsecond,
		ShiftDelay:     10 * time.Microsecond,
		RewindDelay:    100 * time.Microsecond,
		RunCompression: CompressionNone,
	}
}

// LoadError reports a settings file that could not be read or parsed.
type LoadError struct {
	Path string // file that was being loaded
	Key  string // offending key, empty for file-level failures
	Err  error  // underlying cause
}

func (e *LoadError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config %s: key %q: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FromWorkingDir loads DefaultFilename from the current directory.
func FromWorkingDir() (*Config, error) {
	return Load(DefaultFilename)
}

// Load reads a settings file. Absent keys keep their defaults:
// 1 GiB ram_limit, 2µs read/write delays, 10µs shift, 100µs rewind,
// uncompressed runs.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	cfg := defaults()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, found := strings.Cut(sc.Text(), "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "ram_limit":
			cfg.RAMLimit, err = strconv.ParseUint(value, 10, 64)
		case "read_delay":
			cfg.ReadDelay, err = micros(value)
		case "write_delay":
			cfg.WriteDelay, err = micros(value)
		case "tape_shift_delay":
			cfg.ShiftDelay, err = micros(value)
		case "tape_rewind_delay":
			cfg.RewindDelay, err = micros(value)
		case "run_compression":
			switch value {
			case CompressionNone, CompressionSnappy:
				cfg.RunCompression = value
			default:
				err = fmt.Errorf("unknown codec %q", value)
			}
		default:
			continue
		}
		if err != nil {
			return nil, &LoadError{Path: path, Key: key, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return cfg, nil
}

// micros parses a non-negative integer microsecond count.
func micros(s string) (time.Duration, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative duration %d", n)
	}
	return time.Duration(n) * time.Microsecond, nil
}

// Capacity returns how many elements of the given byte width fit in the
// memory budget. A zero result means the budget cannot hold a single
// element, which the sort engine treats as a configuration error.
func (c *Config) Capacity(width int) uint64 {
	if width <= 0 {
		return 0
	}
	return c.RAMLimit / uint64(width)
}

// String renders a human-readable summary, one setting per line.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ram limit    = %d bytes\n", c.RAMLimit)
	fmt.Fprintf(&b, "read delay   = %s\n", c.ReadDelay)
	fmt.Fprintf(&b, "write delay  = %s\n", c.WriteDelay)
	fmt.Fprintf(&b, "tape shift   = %s\n", c.ShiftDelay)
	fmt.Fprintf(&b, "tape rewind  = %s\n", c.RewindDelay)
	fmt.Fprintf(&b, "run codec    = %s", c.RunCompression)
	return b.String()
}
