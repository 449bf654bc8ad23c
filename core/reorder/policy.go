package reorder

import (
	"errors"
	"fmt"
	"slices"

	"listkit/core/diff"
	"listkit/core/snapshot"
)

// ErrPositionOutOfRange indicates a proposed position outside the bounds of
// its section.
var ErrPositionOutOfRange = errors.New("reorder position out of range")

// Policy configures interactive reordering. The zero value disallows
// everything.
type Policy struct {
	// Enabled allows rows to be picked up at all. There is no per-row
	// override; rows are uniformly movable or not.
	Enabled bool
	// AllowCrossSection permits dropping a row into a different section.
	AllowCrossSection bool
}

// CanMove reports whether the row at the given position may be picked up.
func (p Policy) CanMove(at diff.Position) bool {
	return p.Enabled
}

// ProposeMove enacts a drop of the row at from onto the position to against
// the current snapshot. It returns the resulting snapshot and whether the
// move was accepted.
//
// A cross-section drop while AllowCrossSection is false is rejected: the
// current snapshot is returned unchanged and moved is false, so the caller
// can re-apply it and revert the gesture. Unknown sections or out-of-range
// positions are caller errors and fail fast.
func (p Policy) ProposeMove(current *snapshot.Snapshot, from, to diff.Position) (next *snapshot.Snapshot, moved bool, err error) {
	if !p.Enabled {
		return current, false, nil
	}

	source, err := current.ItemIdentifiers(from.Section)
	if err != nil {
		return nil, false, err
	}
	if from.Index < 0 || from.Index >= len(source) {
		return nil, false, fmt.Errorf("%w: %s[%d]", ErrPositionOutOfRange, from.Section, from.Index)
	}

	if from.Section != to.Section && !p.AllowCrossSection {
		return current, false, nil
	}

	item := source[from.Index]
	next = current.Clone()

	if from.Section == to.Section {
		if to.Index < 0 || to.Index >= len(source) {
			return nil, false, fmt.Errorf("%w: %s[%d]", ErrPositionOutOfRange, to.Section, to.Index)
		}
		rows := slices.Delete(slices.Clone(source), from.Index, from.Index+1)
		rows = slices.Insert(rows, to.Index, item)
		// In-group reorders are enacted by replacing the section's entire
		// item list with the new order.
		if err := next.ReplaceSectionItems(to.Section, rows); err != nil {
			return nil, false, err
		}
		return next, true, nil
	}

	dest, err := current.ItemIdentifiers(to.Section)
	if err != nil {
		return nil, false, err
	}
	if to.Index < 0 || to.Index > len(dest) {
		return nil, false, fmt.Errorf("%w: %s[%d]", ErrPositionOutOfRange, to.Section, to.Index)
	}
	next.DeleteItems(item)
	rows := slices.Insert(slices.Clone(dest), to.Index, item)
	if err := next.ReplaceSectionItems(to.Section, rows); err != nil {
		return nil, false, err
	}
	return next, true, nil
}
