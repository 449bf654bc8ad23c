package datasource

import (
	"sync"

	"listkit/core/snapshot"
)

// SizeMode selects how row sizes are resolved.
type SizeMode int

const (
	// SizeAutomatic lets the renderer compute intrinsic row sizes.
	SizeAutomatic SizeMode = iota
	// SizeExplicit resolves row sizes through a caller-supplied function.
	SizeExplicit
)

// SizeFunc returns the explicit size for a row. It must be pure: the same
// (item, section) pair always yields the same size until the mode changes.
type SizeFunc func(item snapshot.ItemID, section snapshot.SectionID) float64

// Sizer resolves per-row measurement for list-style renderers. It starts in
// automatic mode. Switching modes invalidates every size the renderer may
// have cached, so the owning Source follows a switch with a full reload
// pass rather than an incremental one.
type Sizer struct {
	mu   sync.RWMutex
	mode SizeMode
	fn   SizeFunc
}

// NewSizer returns a sizer in automatic mode.
func NewSizer() *Sizer {
	return &Sizer{mode: SizeAutomatic}
}

// Mode returns the current mode.
func (z *Sizer) Mode() SizeMode {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.mode
}

// UseAutomatic switches to intrinsic sizing and reports whether the mode
// actually changed.
func (z *Sizer) UseAutomatic() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	changed := z.mode != SizeAutomatic
	z.mode = SizeAutomatic
	z.fn = nil
	return changed
}

// UseExplicit switches to explicit sizing through fn and reports whether
// the mode actually changed. Supplying a new function while already in
// explicit mode counts as a change, since cached sizes are stale either way.
func (z *Sizer) UseExplicit(fn SizeFunc) bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.mode = SizeExplicit
	z.fn = fn
	return true
}

// Resolve returns the size for a row. explicit is false in automatic mode,
// telling the renderer to measure intrinsically.
func (z *Sizer) Resolve(item snapshot.ItemID, section snapshot.SectionID) (size float64, explicit bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.mode != SizeExplicit || z.fn == nil {
		return 0, false
	}
	return z.fn(item, section), true
}
