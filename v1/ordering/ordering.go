package ordering

// Mode selects the ordering discipline applied to every load and store of a
// cell constructed with it.
type Mode int

const (
	// Plain performs ordinary, unsynchronized memory accesses. There is no
	// cross-goroutine visibility or ordering guarantee at all: a store may
	// never become visible to another goroutine, or may be observed out of
	// program order.
	Plain Mode = iota
	// AcquireRelease pairs each store (release) with the loads (acquire)
	// that observe its value on the same cell. It orders operations only
	// relative to that matched pair; stores to different cells by the same
	// goroutine may still be observed out of program order by a third party.
	AcquireRelease
	// SeqCst makes all loads and stores, across all cells and goroutines,
	// appear in a single total order consistent with each goroutine's
	// program order. Java calls this volatile.
	SeqCst
)

// String returns the mode name as used in flags and reports.
func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case AcquireRelease:
		return "acqrel"
	case SeqCst:
		return "seqcst"
	}
	return "unknown"
}

// ParseMode converts a mode name as produced by String back into a Mode.
// The boolean return indicates whether the name was recognized.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return Plain, true
	case "acqrel":
		return AcquireRelease, true
	case "seqcst":
		return SeqCst, true
	}
	return Plain, false
}

// TotalStoreOrder reports whether the mode guarantees a single total order,
// consistent with program order, over stores to different cells. Algorithms
// whose safety depends on cross-cell store ordering (Peterson's lock among
// them) are correct only under a mode for which this is true.
func (m Mode) TotalStoreOrder() bool {
	return m == SeqCst
}

// Synchronizes reports whether the mode establishes any happens-before
// relationship between goroutines at all. Plain does not: a Plain store may
// remain invisible to other goroutines indefinitely.
func (m Mode) Synchronizes() bool {
	return m != Plain
}
