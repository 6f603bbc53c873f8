package tape

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/tapesort/internal/config"
)

// File is a tape backed by a headerless binary file of fixed-width
// little-endian records. Every primitive operation sleeps for the
// latency configured for it, so a File behaves like the physical medium
// it stands in for. The backing file persists after Close.
type File[T Value] struct {
	cfg    *config.Config
	name   string
	f      *os.File
	width  int
	pos    uint64
	closed bool
}

var _ Tape[int32] = (*File[int32])(nil)

// OpenFile opens the tape file at path, creating it and any missing
// parent directories first. The file is held open read+write for the
// tape's lifetime.
func OpenFile[T Value](path string, cfg *config.Config) (*File[T], error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("tape: create directory for %s: %w", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tape: open %s: %w", path, err)
	}
	return &File[T]{cfg: cfg, name: path, f: f, width: Width[T]()}, nil
}

// Read returns the element under the head without moving it. The read
// latency is charged before returning.
func (t *File[T]) Read() (T, error) {
	var v T
	defer sleep(t.cfg.ReadDelay)
	if t.closed {
		return v, ErrClosed
	}
	if t.AtEnd() {
		return v, io.EOF
	}
	buf := make([]byte, t.width)
	if _, err := t.f.ReadAt(buf, int64(t.pos)*int64(t.width)); err != nil {
		return v, fmt.Errorf("tape: read %s at %d: %w", t.name, t.pos, err)
	}
	if err := binary.Read(bytes.NewReader(buf), byteOrder, &v); err != nil {
		return v, fmt.Errorf("tape: decode %s at %d: %w", t.name, t.pos, err)
	}
	return v, nil
}

// ReadNext reads the element under the head, then shifts forward. The
// shift charges its own latency.
func (t *File[T]) ReadNext() (T, error) {
	v, err := t.Read()
	if err != nil {
		return v, err
	}
	t.Shift(Forward)
	return v, nil
}

// ReadBlock reads up to n elements, stopping early at the end of the
// tape. The returned slice may be shorter than n; an element that reads
// as zero is a real record and is never trimmed. A count above the
// memory budget fails with *CapacityError before any I/O.
func (t *File[T]) ReadBlock(n uint64) ([]T, error) {
	if limit := t.cfg.Capacity(t.width); n > limit {
		return nil, &CapacityError{Op: "read", Requested: n, Limit: limit, RAMLimit: t.cfg.RAMLimit}
	}
	values := make([]T, 0, n)
	for uint64(len(values)) < n && !t.AtEnd() {
		v, err := t.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Write stores an element at the head without moving it, extending the
// tape when the head sits one past the last element. The write latency
// is charged before returning.
func (t *File[T]) Write(value T) error {
	defer sleep(t.cfg.WriteDelay)
	if t.closed {
		return ErrClosed
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, value); err != nil {
		return fmt.Errorf("tape: encode for %s: %w", t.name, err)
	}
	if _, err := t.f.WriteAt(buf.Bytes(), int64(t.pos)*int64(t.width)); err != nil {
		return fmt.Errorf("tape: write %s at %d: %w", t.name, t.pos, err)
	}
	return nil
}

// WriteNext writes the element under the head, then shifts forward.
func (t *File[T]) WriteNext(value T) error {
	if err := t.Write(value); err != nil {
		return err
	}
	t.Shift(Forward)
	return nil
}

// WriteBlock writes the elements sequentially. A slice longer than the
// memory budget fails with *CapacityError before any I/O.
func (t *File[T]) WriteBlock(values []T) error {
	if limit := t.cfg.Capacity(t.width); uint64(len(values)) > limit {
		return &CapacityError{Op: "write", Requested: uint64(len(values)), Limit: limit, RAMLimit: t.cfg.RAMLimit}
	}
	for _, v := range values {
		if err := t.WriteNext(v); err != nil {
			return err
		}
	}
	return nil
}

// Shift moves the head one element in the given direction. It reports
// false when the handle is closed or a backward shift would move the
// head before the start. The shift latency is charged either way.
func (t *File[T]) Shift(dir Direction) bool {
	sleep(t.cfg.ShiftDelay)
	if t.closed {
		return false
	}
	if dir == Backward {
		if t.pos == 0 {
			return false
		}
		t.pos--
		return true
	}
	t.pos++
	return true
}

// Rewind resets the head to position zero, clearing end-of-tape.
func (t *File[T]) Rewind() {
	sleep(t.cfg.RewindDelay)
	t.pos = 0
}

// AtEnd reports whether the head is past the last element.
func (t *File[T]) AtEnd() bool {
	return t.pos >= t.Size()
}

// Size returns the element count: file length divided by the element
// width, trailing partial records ignored. No latency applies; this is
// bookkeeping, not a head movement.
func (t *File[T]) Size() uint64 {
	if t.closed {
		return 0
	}
	info, err := t.f.Stat()
	if err != nil {
		return 0
	}
	return uint64(info.Size()) / uint64(t.width)
}

// Position returns the head's element index.
func (t *File[T]) Position() uint64 {
	return t.pos
}

// Name returns the backing file path.
func (t *File[T]) Name() string {
	return t.name
}

// Config returns the settings shared by this tape.
func (t *File[T]) Config() *config.Config {
	return t.cfg
}

// Close releases the backing handle. The file itself persists.
func (t *File[T]) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.f.Close()
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
