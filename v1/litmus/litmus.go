// Package litmus runs classic memory-model litmus tests against the cells in
// v1/ordering. The store-buffer shape is the one the Peterson lock depends
// on: each goroutine stores to its own cell and then loads the other's. Under
// SeqCst at least one goroutine must observe the other's store; both loading
// zero is the relaxed outcome that breaks the lock.
package litmus

import (
	"context"
	"fmt"
	"sync"

	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

// Result tallies store-buffer outcomes. R0 is what the first goroutine loaded
// from y, R1 what the second loaded from x.
type Result struct {
	Mode       ordering.Mode
	Iterations int
	// BothZero counts the relaxed outcome r0==0 && r1==0, forbidden under
	// a total store order.
	BothZero int
	// ZeroOne, OneZero and OneOne count the sequentially explainable
	// outcomes.
	ZeroOne int
	OneZero int
	OneOne  int
}

// String renders the tally as a single line.
func (r *Result) String() string {
	return fmt.Sprintf("store-buffer mode=%s iters=%d both_zero=%d zero_one=%d one_zero=%d one_one=%d",
		r.Mode, r.Iterations, r.BothZero, r.ZeroOne, r.OneZero, r.OneOne)
}

// StoreBuffer runs the store-buffer litmus for the given number of
// iterations. Each iteration races two goroutines on a fresh pair of cells:
// one executes x=1; r0=y, the other y=1; r1=x. The context is polled between
// iterations; its error is returned if it expires mid-run.
func StoreBuffer(ctx context.Context, mode ordering.Mode, iterations int) (*Result, error) {
	res := &Result{Mode: mode, Iterations: iterations}
	for i := 0; i < iterations; i++ {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		x := ordering.NewUint32(mode, 0)
		y := ordering.NewUint32(mode, 0)
		var r0, r1 uint32

		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			x.Store(1)
			r0 = y.Load()
		}()
		go func() {
			defer wg.Done()
			<-start
			y.Store(1)
			r1 = x.Load()
		}()
		close(start)
		wg.Wait()

		switch {
		case r0 == 0 && r1 == 0:
			res.BothZero++
		case r0 == 0:
			res.ZeroOne++
		case r1 == 0:
			res.OneZero++
		default:
			res.OneOne++
		}
	}
	return res, nil
}
