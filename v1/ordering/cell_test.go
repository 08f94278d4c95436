package ordering

import "testing"

func TestUint32StoreLoad(t *testing.T) {
	for _, m := range []Mode{Plain, AcquireRelease, SeqCst} {
		c := NewUint32(m, 7)
		if got := c.Load(); got != 7 {
			t.Fatalf("mode %v: initial load %d", m, got)
		}
		c.Store(42)
		if got := c.Load(); got != 42 {
			t.Fatalf("mode %v: load after store %d", m, got)
		}
		if c.Mode() != m {
			t.Fatalf("mode %v: cell reports %v", m, c.Mode())
		}
	}
}

func TestFlagStoreLoad(t *testing.T) {
	for _, m := range []Mode{Plain, AcquireRelease, SeqCst} {
		f := NewFlag(m)
		if f.Load() {
			t.Fatalf("mode %v: new flag must be clear", m)
		}
		f.Store(true)
		if !f.Load() {
			t.Fatalf("mode %v: flag lost a set", m)
		}
		f.Store(false)
		if f.Load() {
			t.Fatalf("mode %v: flag lost a clear", m)
		}
	}
}

func TestFlagVisibleAcrossGoroutines(t *testing.T) {
	f := NewFlag(SeqCst)
	done := make(chan struct{})
	go func() {
		f.Store(true)
		close(done)
	}()
	<-done
	if !f.Load() {
		t.Fatal("store not visible after synchronization")
	}
}
