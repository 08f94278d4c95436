package lock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

func TestPetersonSoloSequential(t *testing.T) {
	p := NewPeterson(ordering.SeqCst)
	counter := 0
	p.Lock(0)
	counter++
	if counter != 1 {
		t.Fatalf("counter %d inside critical section", counter)
	}
	counter--
	p.Unlock(0)
	if counter != 0 {
		t.Fatalf("counter %d after release", counter)
	}
}

func TestPetersonFreshLockBothSlots(t *testing.T) {
	for slot := Slot(0); slot < 2; slot++ {
		p := NewPeterson(ordering.SeqCst)
		done := make(chan struct{})
		go func() {
			p.Lock(slot)
			p.Unlock(slot)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("slot %d blocked on a fresh lock", slot)
		}
	}
}

func TestPetersonMutualExclusion(t *testing.T) {
	const iterations = 50000
	p := NewPeterson(ordering.SeqCst)
	var holders, max atomic.Int32
	var wg sync.WaitGroup

	for s := 0; s < 2; s++ {
		slot := Slot(s)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p.Lock(slot)
				n := holders.Add(1)
				for {
					cur := max.Load()
					if n <= cur || max.CompareAndSwap(cur, n) {
						break
					}
				}
				holders.Add(-1)
				p.Unlock(slot)
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(60 * time.Second):
		t.Fatal("participants did not finish: liveness violation")
	}
	if got := max.Load(); got > 1 {
		t.Fatalf("observed %d holders in the critical section", got)
	}
}

func TestPetersonProgress(t *testing.T) {
	const iterations = 2000
	p := NewPeterson(ordering.SeqCst)
	var progress [2]atomic.Int64
	var wg sync.WaitGroup

	for s := 0; s < 2; s++ {
		slot := Slot(s)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p.Lock(slot)
				progress[slot].Add(1)
				p.Unlock(slot)
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatalf("starvation: slot0=%d slot1=%d of %d",
			progress[0].Load(), progress[1].Load(), iterations)
	}
	for s := 0; s < 2; s++ {
		if got := progress[s].Load(); got != iterations {
			t.Fatalf("slot %d made %d of %d entries", s, got, iterations)
		}
	}
}

func TestPetersonAlternation(t *testing.T) {
	p := NewPeterson(ordering.SeqCst)
	for i := 0; i < 100; i++ {
		p.Lock(0)
		p.Unlock(0)
		p.Lock(1)
		p.Unlock(1)
	}
}

func TestPetersonYieldOption(t *testing.T) {
	var yields atomic.Int64
	p := NewPeterson(ordering.SeqCst,
		WithMaxSpins(0),
		WithYield(func() { yields.Add(1) }),
	)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		p.Lock(0)
		close(held)
		<-release
		p.Unlock(0)
	}()
	<-held

	acquired := make(chan struct{})
	go func() {
		p.Lock(1)
		p.Unlock(1)
		close(acquired)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("waiter never acquired after release")
	}
	if yields.Load() == 0 {
		t.Fatal("custom yield hint never invoked while spinning")
	}
}

func TestPetersonModeAccessor(t *testing.T) {
	for _, m := range []ordering.Mode{ordering.Plain, ordering.AcquireRelease, ordering.SeqCst} {
		if got := NewPeterson(m).Mode(); got != m {
			t.Fatalf("mode accessor: got %v want %v", got, m)
		}
	}
}

// The algorithm's safety depends on a total store order across the interest
// and victim cells; acquire/release only orders matched pairs on the same
// cell. The weaker modes stay constructible so the difference can be
// demonstrated, but only SeqCst carries the guarantee.
func TestPetersonSafetyRequiresTotalStoreOrder(t *testing.T) {
	if ordering.AcquireRelease.TotalStoreOrder() {
		t.Fatal("acquire/release must not claim the guarantee Peterson needs")
	}
	if !NewPeterson(ordering.SeqCst).Mode().TotalStoreOrder() {
		t.Fatal("seqcst lock lost its total store order")
	}
}

func TestSlotOther(t *testing.T) {
	if Slot(0).Other() != 1 || Slot(1).Other() != 0 {
		t.Fatal("slot pairing broken")
	}
}
