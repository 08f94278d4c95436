// Package lock provides spin locks built from plain loads and stores under a
// configurable memory-ordering mode. The centerpiece is Peterson's two-slot
// mutual-exclusion algorithm, which is correct only when its shared cells are
// sequentially consistent; constructing it with a weaker mode is supported
// precisely so that the difference can be observed. A conventional
// compare-and-swap SpinLock is included as a baseline for benchmarks.
package lock
