package tape

import (
	"encoding/binary"

	"github.com/roach88/tapesort/internal/config"
)

// byteOrder is the wire byte order of every tape and run file.
var byteOrder = binary.LittleEndian

// Value is the set of element types a tape can hold: fixed-width
// comparable scalars.
type Value interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Width returns the encoded size of T in bytes.
func Width[T Value]() int {
	return binary.Size(*new(T))
}

// Direction selects which way a Shift moves the head.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Tape is the sequential-access storage capability. The head sits on one
// element position; reads and writes act on that position without moving
// the head, the *Next variants follow up with a forward Shift, and the
// *Block variants transfer up to the memory budget's worth of elements.
//
// Both bulk operations reject a count above Config().Capacity before any
// I/O happens, so a budget violation never partially executes.
type Tape[T Value] interface {
	// Read returns the element under the head without moving it.
	Read() (T, error)
	// ReadNext reads the element under the head, then shifts forward.
	ReadNext() (T, error)
	// ReadBlock reads up to n elements, stopping early at the end of the
	// medium; the result may be shorter than n. A count above the memory
	// budget fails with *CapacityError.
	ReadBlock(n uint64) ([]T, error)

	// Write stores an element at the head without moving it.
	Write(value T) error
	// WriteNext writes the element under the head, then shifts forward.
	WriteNext(value T) error
	// WriteBlock writes the elements sequentially. A slice longer than
	// the memory budget fails with *CapacityError before any I/O.
	WriteBlock(values []T) error

	// Shift moves the head one element in the given direction. It
	// reports false when the backing handle is invalid or a backward
	// shift would move the head before the start. The shift latency is
	// charged regardless of outcome.
	Shift(dir Direction) bool
	// Rewind resets the head to position zero and clears end-of-tape.
	Rewind()

	// AtEnd reports whether the head is past the last element.
	AtEnd() bool
	// Size returns the element count. Latency-free bookkeeping.
	Size() uint64
	// Position returns the head's element index.
	Position() uint64
	// Name identifies the tape, typically by its backing path.
	Name() string
	// Config returns the settings shared by this tape.
	Config() *config.Config
}
