// Package resource bounds what a similarity run may consume: memory for the
// per-level pair accumulators, worker slots for sharded co-occurrence builds
// and I/O throughput for blob reads.
//
// A nil *Controller is valid and imposes no limits.
package resource
