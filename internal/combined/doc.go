// Package combined provides benchmarks that exercise several primitives
// together.
//
// The queue comparisons pit the monitor-based BoundedBuffer and the
// channel-backed ChannelBuffer against the lock-free sharded ring under the
// same producer counts. The scenario benchmarks run the full pipeline,
// symbols and counters workloads end to end.
package combined
