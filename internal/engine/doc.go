// Package engine implements external merge sort over sequential tapes.
//
// The sort runs in two phases. Run generation drains the input tape in
// chunks bounded by the configured memory budget, sorts each chunk in
// memory, and spills it to an auto-deleting run file. The merge phase
// feeds every run through a min-heap keyed on (value, run index) and
// streams the heap minimum to the output tape until all runs drain.
//
// The engine is single-threaded and synchronous: configured latencies
// are realized as literal sleeps on the calling goroutine, and a sort in
// progress cannot be cancelled. It holds no state between calls. Every
// failure is terminal for the call that raised it — there are no
// retries, and output already written when a merge fails stays on the
// output tape.
//
// Disk usage during the merge equals the size of the input, held in the
// run files. Callers are responsible for having that much free space;
// the engine does not check.
package engine
