package lock

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a conventional test-and-set spin lock. Unlike Peterson it uses
// compare-and-swap, supports any number of goroutines and carries no
// memory-ordering mode; it exists as the baseline the bench tooling compares
// Peterson against. The zero value is unlocked.
type SpinLock struct {
	state uint32
}

const spinLockMaxSpins = 16

// Lock acquires the lock, spinning with a processor-yield hint until it is
// available.
func (l *SpinLock) Lock() {
	spins := 0
	for {
		for atomic.LoadUint32(&l.state) == 1 {
			spins++
			if spins > spinLockMaxSpins {
				spins = 0
				runtime.Gosched()
			}
		}
		if atomic.CompareAndSwapUint32(&l.state, 0, 1) {
			return
		}
	}
}

// TryLock attempts to acquire the lock without waiting. It returns true on
// success.
func (l *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	atomic.StoreUint32(&l.state, 0)
}
