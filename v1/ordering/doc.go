// Package ordering models the memory-ordering discipline applied to shared
// variables. A Mode is chosen once, when a cell is constructed, and governs
// every subsequent load and store of that cell. Cells are the only building
// block the lock algorithms in this module are allowed to use: plain loads
// and stores, no compare-and-swap.
//
// Go exposes two disciplines natively: ordinary memory accesses (Plain) and
// sync/atomic accesses, which are sequentially consistent. AcquireRelease
// therefore executes on the same primitives as SeqCst; the distinction it
// carries is contractual, exposed through Mode.TotalStoreOrder, so callers
// can reason about (and document) what the mode guarantees on platforms that
// do implement it natively.
package ordering
