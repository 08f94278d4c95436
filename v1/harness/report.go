package harness

import (
	"fmt"
	"time"

	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

// Report summarizes what the instrumentation observed during one run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string
	// Mode is the memory-ordering mode the lock ran under.
	Mode ordering.Mode
	// Iterations is the number of critical-section cycles per participant.
	Iterations int
	// MaxHolders is the highest number of participants observed inside the
	// critical section at once. Anything above 1 is a safety violation.
	MaxHolders int32
	// Violations counts critical-section entries that found another holder
	// already inside.
	Violations int64
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Exclusive reports whether mutual exclusion held for the whole run.
func (r *Report) Exclusive() bool {
	return r.MaxHolders <= 1
}

// String renders the report as a single human-readable line.
func (r *Report) String() string {
	verdict := "exclusive"
	if !r.Exclusive() {
		verdict = fmt.Sprintf("VIOLATED (%d overlapping entries)", r.Violations)
	}
	return fmt.Sprintf("run %s mode=%s iters=%d max_holders=%d elapsed=%s: %s",
		r.RunID, r.Mode, r.Iterations, r.MaxHolders, r.Elapsed, verdict)
}
