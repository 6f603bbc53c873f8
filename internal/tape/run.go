package tape

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/roach88/tapesort/internal/config"
)

// scratchDirName is the directory under the system temp directory that
// holds run files.
const scratchDirName = "tapesort-runs"

// ScratchDir returns the directory run files are created in.
func ScratchDir() string {
	return filepath.Join(os.TempDir(), scratchDirName)
}

// Run holds one sorted chunk spilled during an external sort. The chunk
// is written in full at construction and then read back strictly
// forward, one element at a time; no element is ever re-read. Runs are
// merge scratch space rather than tapes, so no configured latency
// applies to them, and the backing file is removed on Close no matter
// how the sort ended.
//
// With run_compression=snappy the payload is written through a snappy
// stream; the element count is tracked in memory, so exhaustion is an
// explicit signal either way and never inferred from a zero value.
type Run[T Value] struct {
	path      string
	f         *os.File
	cursor    io.Reader
	remaining uint64
	closed    bool
}

// NewRun spills values to a fresh run file under ScratchDir. The file
// gets a collision-resistant random name and is owned exclusively by
// the returned Run.
func NewRun[T Value](values []T, cfg *config.Config) (*Run[T], error) {
	dir := ScratchDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("tape: create scratch directory: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+".run")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("tape: create run file: %w", err)
	}
	r := &Run[T]{path: path, f: f, remaining: uint64(len(values))}
	if err := r.spill(values, cfg.RunCompression); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// spill writes the whole run and resets the cursor to the start.
func (r *Run[T]) spill(values []T, codec string) error {
	if codec == config.CompressionSnappy {
		w := snappy.NewBufferedWriter(r.f)
		if err := binary.Write(w, byteOrder, values); err != nil {
			return fmt.Errorf("tape: write run %s: %w", r.path, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("tape: flush run %s: %w", r.path, err)
		}
	} else {
		if err := binary.Write(r.f, byteOrder, values); err != nil {
			return fmt.Errorf("tape: write run %s: %w", r.path, err)
		}
	}
	if _, err := r.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("tape: rewind run %s: %w", r.path, err)
	}
	if codec == config.CompressionSnappy {
		r.cursor = snappy.NewReader(r.f)
	} else {
		r.cursor = bufio.NewReader(r.f)
	}
	return nil
}

// ReadOne returns the next unread element. The boolean is false exactly
// when the run is exhausted or the handle is invalid; a zero value
// paired with true is a legitimate record.
func (r *Run[T]) ReadOne() (T, bool) {
	var v T
	if r.closed || r.remaining == 0 {
		return v, false
	}
	if err := binary.Read(r.cursor, byteOrder, &v); err != nil {
		return v, false
	}
	r.remaining--
	return v, true
}

// Len returns how many elements remain unread.
func (r *Run[T]) Len() uint64 {
	return r.remaining
}

// Name returns the backing file path.
func (r *Run[T]) Name() string {
	return r.path
}

// Close closes and removes the backing file. Removal failures are
// deliberately ignored: cleanup can never affect sort correctness and
// must never fail the caller.
func (r *Run[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	_ = r.f.Close()
	_ = os.Remove(r.path)
	return nil
}
