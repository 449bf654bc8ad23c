package datasource

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"listkit/core/diff"
	"listkit/core/reorder"
	"listkit/core/snapshot"
)

// RenderFunc receives the plan for one apply. The callback runs while the
// apply lock is held and must complete the visual update (or schedule it on
// the UI loop and wait) before returning; returning is the completion signal.
type RenderFunc func(plan *diff.Plan, animated bool) error

// Config configures a Source. All fields are optional.
type Config struct {
	// Logger receives per-apply summaries. Defaults to a no-op logger.
	Logger *zap.Logger
	// Render is invoked with every computed plan. Nil makes the source
	// headless; applies still advance the current snapshot.
	Render RenderFunc
	// Reorder gates interactive row reordering.
	Reorder reorder.Policy
	// Sizer resolves row sizes. Defaults to a sizer in automatic mode.
	Sizer *Sizer
	// Rand is the randomness source for Shuffle. Defaults to the shared
	// global source; inject a seeded one for reproducibility.
	Rand *rand.Rand
}

// Source owns the current snapshot of one list and drives the diff engine.
type Source struct {
	mu      sync.Mutex
	current *snapshot.Snapshot

	log     *zap.Logger
	render  RenderFunc
	policy  reorder.Policy
	sizer   *Sizer
	rng     *rand.Rand
}

// New returns a source with an empty current snapshot.
func New(cfg Config) *Source {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sizer := cfg.Sizer
	if sizer == nil {
		sizer = NewSizer()
	}
	return &Source{
		current: snapshot.New(),
		log:     log,
		render:  cfg.Render,
		policy:  cfg.Reorder,
		sizer:   sizer,
		rng:     cfg.Rand,
	}
}

// Snapshot returns a deep copy of the current snapshot, the starting point
// for building the next target state.
func (s *Source) Snapshot() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Layout returns the current layout, for renderers bootstrapping their
// visual state.
func (s *Source) Layout() *diff.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return diff.LayoutOf(s.current)
}

// Apply diffs the current snapshot against next, hands the plan to the
// render callback, and adopts next as current. Concurrent calls serialize
// strict-FIFO; each call diffs against the state left by the previous one.
func (s *Source) Apply(next *snapshot.Snapshot, animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(next, animated)
}

func (s *Source) applyLocked(next *snapshot.Snapshot, animated bool) (*diff.Plan, error) {
	plan, err := diff.Compute(s.current, next)
	if err != nil {
		return nil, err
	}
	if s.render != nil {
		if err := s.render(plan, animated); err != nil {
			return nil, fmt.Errorf("render failed: %w", err)
		}
	}
	adopted := next.Clone()
	adopted.ClearMarks()
	s.current = adopted
	s.log.Debug("applied snapshot",
		zap.Int("operations", len(plan.Operations)),
		zap.Int("moves", plan.Summary.Moves),
		zap.Int("inserts", plan.Summary.ItemInserts),
		zap.Int("deletes", plan.Summary.ItemDeletes),
		zap.Bool("animated", animated),
	)
	return plan, nil
}

// ApplyInitial replaces whatever is current with a freshly built snapshot
// holding the given sections and items, in order.
func (s *Source) ApplyInitial(sections []snapshot.SectionID, items map[snapshot.SectionID][]snapshot.ItemID, animated bool) (*diff.Plan, error) {
	next := snapshot.New()
	if err := next.AppendSections(sections...); err != nil {
		return nil, err
	}
	for _, sec := range sections {
		if err := next.AppendItems(sec, items[sec]...); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(next, animated)
}

// Append adds items at the end of a section.
func (s *Source) Append(section snapshot.SectionID, animated bool, items ...snapshot.ItemID) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	if err := next.AppendItems(section, items...); err != nil {
		return nil, err
	}
	return s.applyLocked(next, animated)
}

// Delete removes items. Absent identifiers are ignored, matching the
// snapshot's idempotent deletion policy.
func (s *Source) Delete(animated bool, items ...snapshot.ItemID) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	next.DeleteItems(items...)
	return s.applyLocked(next, animated)
}

// Move relocates an item to the end of another section, preserving its
// identity: the diff expresses it as a single cross-section move.
func (s *Source) Move(item snapshot.ItemID, to snapshot.SectionID, animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	if !next.ContainsItem(item) {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrUnknownItem, item)
	}
	next.DeleteItems(item)
	if err := next.AppendItems(to, item); err != nil {
		return nil, err
	}
	return s.applyLocked(next, animated)
}

// Shuffle randomizes the order of a section's items with a uniform
// Fisher–Yates permutation. The identity set is preserved exactly.
func (s *Source) Shuffle(section snapshot.SectionID, animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	rows, err := next.ItemIdentifiers(section)
	if err != nil {
		return nil, err
	}
	swap := func(i, j int) { rows[i], rows[j] = rows[j], rows[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(rows), swap)
	} else {
		rand.Shuffle(len(rows), swap)
	}
	if err := next.ReplaceSectionItems(section, rows); err != nil {
		return nil, err
	}
	return s.applyLocked(next, animated)
}

// Reconfigure refreshes items in place without touching their position.
func (s *Source) Reconfigure(animated bool, items ...snapshot.ItemID) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	if err := next.ReconfigureItems(items...); err != nil {
		return nil, err
	}
	return s.applyLocked(next, animated)
}

// Reload destroys and recreates the items' visual elements in place.
func (s *Source) Reload(animated bool, items ...snapshot.ItemID) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	if err := next.ReloadItems(items...); err != nil {
		return nil, err
	}
	return s.applyLocked(next, animated)
}

// ReloadAll marks every row for reload, used when every cached visual
// property became invalid at once.
func (s *Source) ReloadAll(animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadAllLocked(animated)
}

func (s *Source) reloadAllLocked(animated bool) (*diff.Plan, error) {
	next := s.current.Clone()
	for _, sec := range next.SectionIdentifiers() {
		rows, _ := next.ItemIdentifiers(sec)
		if err := next.ReloadItems(rows...); err != nil {
			return nil, err
		}
	}
	return s.applyLocked(next, animated)
}

// CanMove reports whether the row at the given position may be picked up
// for interactive reordering.
func (s *Source) CanMove(at diff.Position) bool {
	return s.policy.CanMove(at)
}

// ProposeMove enacts an interactive drop through the reorder policy. The
// result is applied without animation either way: an accepted move is
// already visually tracked by the drag, and a rejected one re-applies the
// unchanged snapshot so the renderer reverts instantly.
func (s *Source) ProposeMove(from, to diff.Position) (moved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, moved, err := s.policy.ProposeMove(s.current, from, to)
	if err != nil {
		return false, err
	}
	if !moved {
		s.log.Debug("reorder rejected",
			zap.String("from_section", string(from.Section)),
			zap.String("to_section", string(to.Section)),
		)
	}
	if _, err := s.applyLocked(next, false); err != nil {
		return false, err
	}
	return moved, nil
}

// RowSize resolves the size of a row through the sizing policy.
func (s *Source) RowSize(item snapshot.ItemID, section snapshot.SectionID) (float64, bool) {
	return s.sizer.Resolve(item, section)
}

// SetExplicitSizing switches row measurement to fn and runs a full reload
// pass, since sizes the renderer cached under the old mode are now invalid.
func (s *Source) SetExplicitSizing(fn SizeFunc, animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if changed := s.sizer.UseExplicit(fn); !changed {
		return &diff.Plan{}, nil
	}
	return s.reloadAllLocked(animated)
}

// SetAutomaticSizing switches back to intrinsic measurement, with the same
// full reload pass when the mode actually changes.
func (s *Source) SetAutomaticSizing(animated bool) (*diff.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if changed := s.sizer.UseAutomatic(); !changed {
		return &diff.Plan{}, nil
	}
	return s.reloadAllLocked(animated)
}
