package lock

import (
	"runtime"

	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

// Slot identifies one of the two participants of a Peterson lock. Callers
// assign each participating goroutine a distinct Slot (0 or 1) for the
// lifetime of the lock; the lock never assigns identities itself.
type Slot uint32

// Other returns the opposing slot.
func (s Slot) Other() Slot { return 1 - s }

const defaultMaxSpins = 16

// Peterson is a two-participant mutual-exclusion lock built from plain loads
// and stores on three shared cells: one interest flag per slot and a shared
// victim cell. All three cells follow the memory-ordering mode chosen at
// construction.
//
// Mutual exclusion holds only under ordering.SeqCst. Under
// ordering.AcquireRelease both participants can occupy the critical section
// at once, because nothing orders a goroutine's interest store before its
// victim store as seen by the other participant. Under ordering.Plain there
// is additionally no visibility guarantee at all, so Lock may spin forever.
//
// Preconditions, not checked: exactly two goroutines participate, each with a
// fixed distinct Slot, and each calls Lock and Unlock in strict alternation.
// Violating them can leave a participant spinning indefinitely.
type Peterson struct {
	interest [2]*ordering.Flag
	victim   *ordering.Uint32
	mode     ordering.Mode
	maxSpins int
	yield    func()
}

// PetersonOption configures a Peterson lock.
type PetersonOption func(*Peterson)

// WithMaxSpins sets the number of polls between processor-yield hints while
// waiting. A non-positive value yields on every poll.
func WithMaxSpins(n int) PetersonOption {
	return func(p *Peterson) {
		p.maxSpins = n
	}
}

// WithYield replaces the processor-yield hint used between polls. The default
// is runtime.Gosched; a no-op function gives a pure busy wait.
func WithYield(f func()) PetersonOption {
	return func(p *Peterson) {
		p.yield = f
	}
}

// NewPeterson returns a Peterson lock whose shared cells follow mode. Both
// interest flags start cleared and the victim cell starts at 0; construction
// must complete before either participant goroutine is started.
func NewPeterson(mode ordering.Mode, opts ...PetersonOption) *Peterson {
	p := &Peterson{
		interest: [2]*ordering.Flag{ordering.NewFlag(mode), ordering.NewFlag(mode)},
		victim:   ordering.NewUint32(mode, 0),
		mode:     mode,
		maxSpins: defaultMaxSpins,
		yield:    runtime.Gosched,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the memory-ordering mode the lock was constructed with.
func (p *Peterson) Mode() ordering.Mode { return p.mode }

// Lock acquires the lock for slot self. It announces interest, volunteers as
// the victim, then busy-waits while the other slot is interested and self is
// still the victim. The second participant to store the victim cell waits;
// the first observes itself overwritten and proceeds. There is no timeout:
// under a mode too weak for the algorithm, or under violated preconditions,
// Lock can spin forever.
func (p *Peterson) Lock(self Slot) {
	other := self.Other()
	p.interest[self].Store(true)
	p.victim.Store(uint32(self))
	spins := 0
	for p.interest[other].Load() && p.victim.Load() == uint32(self) {
		spins++
		if spins > p.maxSpins {
			spins = 0
			p.yield()
		}
	}
}

// Unlock releases the lock for slot self by clearing its interest flag. It
// must only be called by the slot that currently holds the lock.
func (p *Peterson) Unlock(self Slot) {
	p.interest[self].Store(false)
}
