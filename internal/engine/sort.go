package engine

import (
	"container/heap"
	"log/slog"
	"slices"

	"github.com/roach88/tapesort/internal/tape"
)

// Phase identifies which stage of the sort a progress update belongs to.
type Phase int

const (
	// PhaseRead covers run generation: draining the input tape into
	// sorted runs.
	PhaseRead Phase = iota
	// PhaseMerge covers the k-way merge into the output tape.
	PhaseMerge
)

func (p Phase) String() string {
	if p == PhaseMerge {
		return "sorting"
	}
	return "reading"
}

// Progress receives cosmetic progress updates: done out of total units
// of the given phase. It runs on the sorting goroutine and should
// return quickly. A nil Progress is valid and reports nothing.
type Progress func(phase Phase, done, total uint64)

// Sort writes the elements of in to out in ascending order. Working
// memory is bounded by in's configured ram_limit: the input is drained
// in budget-sized chunks, each sorted in memory and spilled to a
// temporary run file, and the runs are then merged into out through a
// min-heap. Run files are removed before Sort returns on every path.
//
// Duplicate keys drain in run order, so the output is identical from
// one invocation to the next. Any I/O or capacity failure aborts the
// sort with that error; output written before a merge failure stays on
// the output tape.
func Sort[T tape.Value](in, out tape.Tape[T], progress Progress) error {
	cfg := in.Config()
	width := tape.Width[T]()
	capacity := cfg.Capacity(width)
	if capacity == 0 {
		return &BudgetError{RAMLimit: cfg.RAMLimit, Width: width}
	}
	total := in.Size()
	if total == 0 {
		return nil
	}

	runCount := (total + capacity - 1) / capacity
	slog.Debug("generating runs",
		"input", in.Name(), "elements", total, "capacity", capacity, "runs", runCount)

	runs := make([]*tape.Run[T], 0, runCount)
	defer func() {
		for _, r := range runs {
			r.Close()
		}
	}()

	for i := uint64(0); i < runCount; i++ {
		chunk, err := in.ReadBlock(capacity)
		if err != nil {
			return err
		}
		slices.Sort(chunk)
		run, err := tape.NewRun(chunk, cfg)
		if err != nil {
			return err
		}
		runs = append(runs, run)
		if progress != nil {
			progress(PhaseRead, i+1, runCount)
		}
	}

	h := &runHeap[T]{entries: make([]cursor[T], 0, len(runs))}
	for i, run := range runs {
		if v, ok := run.ReadOne(); ok {
			h.entries = append(h.entries, cursor[T]{value: v, run: i})
		}
	}
	heap.Init(h)

	slog.Debug("merging runs", "output", out.Name(), "runs", h.Len())
	var written uint64
	for h.Len() > 0 {
		top := h.entries[0]
		if err := out.WriteNext(top.value); err != nil {
			return err
		}
		written++
		if progress != nil {
			progress(PhaseMerge, written, total)
		}
		// Replace the heap top in place instead of pop+push; presence of
		// a successor is ReadOne's boolean, never the value itself.
		if v, ok := runs[top.run].ReadOne(); ok {
			h.entries[0].value = v
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}
	return nil
}
