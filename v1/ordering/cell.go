package ordering

import "sync/atomic"

// Uint32 is a shared cell holding a uint32. Every Load and Store follows the
// Mode fixed at construction. The zero value is a Plain cell holding 0;
// construct cells before any goroutine that touches them is started.
type Uint32 struct {
	mode Mode
	v    uint32
}

// NewUint32 returns a cell governed by mode, holding v.
func NewUint32(mode Mode, v uint32) *Uint32 {
	return &Uint32{mode: mode, v: v}
}

// Mode returns the discipline the cell was constructed with.
func (c *Uint32) Mode() Mode { return c.mode }

// Load reads the cell using the mode's load semantics.
func (c *Uint32) Load() uint32 {
	if c.mode == Plain {
		return c.v
	}
	return atomic.LoadUint32(&c.v)
}

// Store writes the cell using the mode's store semantics.
func (c *Uint32) Store(v uint32) {
	if c.mode == Plain {
		c.v = v
		return
	}
	atomic.StoreUint32(&c.v, v)
}

// Flag is a shared boolean cell governed by a Mode, stored as 0 or 1.
type Flag struct {
	mode Mode
	v    uint32
}

// NewFlag returns a cleared flag governed by mode.
func NewFlag(mode Mode) *Flag {
	return &Flag{mode: mode}
}

// Load reads the flag using the mode's load semantics.
func (f *Flag) Load() bool {
	if f.mode == Plain {
		return f.v != 0
	}
	return atomic.LoadUint32(&f.v) != 0
}

// Store writes the flag using the mode's store semantics.
func (f *Flag) Store(set bool) {
	var v uint32
	if set {
		v = 1
	}
	if f.mode == Plain {
		f.v = v
		return
	}
	atomic.StoreUint32(&f.v, v)
}
