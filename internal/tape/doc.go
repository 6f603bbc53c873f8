// Package tape models sequential-access storage: a medium with a
// stationary read/write head that can only be moved one element at a
// time or rewound to the start, with a configurable latency charged on
// every primitive operation.
//
// Two media are provided. File is a tape backed by a headerless binary
// file of fixed-width little-endian records; it honors the configured
// latencies and persists after close. Run is an ephemeral, auto-deleting
// spill file used by the sort engine to hold one sorted chunk; it is
// read strictly forward, once, and carries no latency.
//
// Random access to the backing file exists physically but is never
// exposed: the public surface only offers position-relative operations,
// which is what makes the sequential-access contract hold.
package tape
