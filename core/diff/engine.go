package diff

import (
	"fmt"

	"listkit/core/snapshot"
)

// sectionState classifies a section's fate between two snapshots.
type sectionState int

const (
	secStable sectionState = iota + 1
	secDeleted
	secInserted
	// secRebuilt is a retained section whose relative order changed; it is
	// realized as delete plus insert since the operation set has no section move.
	secRebuilt
)

// Compute diffs two snapshots and returns the plan that transforms the
// previous layout into the next one. Both snapshots must be well formed;
// neither is retained or mutated. The only error condition is a reload mark
// on an identity absent from the previous snapshot (ErrIdentityConflict).
func Compute(prev, next *snapshot.Snapshot) (*Plan, error) {
	plan := &Plan{}

	prevSecs := prev.SectionIdentifiers()
	nextSecs := next.SectionIdentifiers()

	prevSecIndex := make(map[snapshot.SectionID]int, len(prevSecs))
	for i, sec := range prevSecs {
		prevSecIndex[sec] = i
	}

	// Classify sections. Retained sections start as rebuilt and are promoted
	// to stable when they sit on a longest increasing subsequence of their
	// previous indices taken in next order, i.e. their relative order held.
	state := make(map[snapshot.SectionID]sectionState, len(prevSecs)+len(nextSecs))
	var retained []snapshot.SectionID
	var retainedPrev []int
	for _, sec := range nextSecs {
		if pi, ok := prevSecIndex[sec]; ok {
			retained = append(retained, sec)
			retainedPrev = append(retainedPrev, pi)
			state[sec] = secRebuilt
		} else {
			state[sec] = secInserted
		}
	}
	for _, sec := range prevSecs {
		if _, ok := state[sec]; !ok {
			state[sec] = secDeleted
		}
	}
	for i, keep := range longestIncreasing(retainedPrev) {
		if keep {
			state[retained[i]] = secStable
		}
	}

	prevPos := positionIndex(prev, prevSecs)
	nextPos := positionIndex(next, nextSecs)

	// Item deletes against the previous layout. Rows in deleted or rebuilt
	// sections go down with their section and need no individual delete.
	var itemDeletes []Operation
	for _, sec := range prevSecs {
		if state[sec] != secStable {
			continue
		}
		rows, _ := prev.ItemIdentifiers(sec)
		for i := len(rows) - 1; i >= 0; i-- {
			it := rows[i]
			np, inNext := nextPos[it]
			if inNext && state[np.Section] == secStable {
				continue
			}
			from := Position{Section: sec, Index: i}
			itemDeletes = append(itemDeletes, Operation{Type: OpDeleteItem, Item: it, From: &from})
			plan.Summary.ItemDeletes++
		}
	}

	var secDeletes []Operation
	for i := len(prevSecs) - 1; i >= 0; i-- {
		sec := prevSecs[i]
		if st := state[sec]; st == secDeleted || st == secRebuilt {
			secDeletes = append(secDeletes, Operation{Type: OpDeleteSection, Section: sec, SectionIndex: i})
			plan.Summary.SectionDeletes++
		}
	}

	var secInserts []Operation
	for i, sec := range nextSecs {
		if st := state[sec]; st == secInserted || st == secRebuilt {
			secInserts = append(secInserts, Operation{Type: OpInsertSection, Section: sec, SectionIndex: i})
			plan.Summary.SectionInserts++
		}
	}

	// Moves and inserts, merged in ascending target order. emitted records
	// which rows got a structural op, for the mark phase below.
	var rowOps []Operation
	emitted := make(map[snapshot.ItemID]OpType)
	for _, sec := range nextSecs {
		rows, _ := next.ItemIdentifiers(sec)
		if st := state[sec]; st == secInserted || st == secRebuilt {
			for i, it := range rows {
				to := Position{Section: sec, Index: i}
				rowOps = append(rowOps, Operation{Type: OpInsertItem, Item: it, To: &to})
				emitted[it] = OpInsertItem
				plan.Summary.ItemInserts++
			}
			continue
		}

		// Stable section. Rows that stayed in this section keep their
		// relative order on a longest increasing subsequence of previous
		// indices; the rest move. Rows arriving from elsewhere either move
		// (stable source) or insert (destroyed source).
		kind := make([]OpType, len(rows))
		var stayedAt []int
		var stayedPrev []int
		for i, it := range rows {
			pp, inPrev := prevPos[it]
			if !inPrev || state[pp.Section] != secStable {
				kind[i] = OpInsertItem
			} else if pp.Section != sec {
				kind[i] = OpMoveItem
			} else {
				stayedAt = append(stayedAt, i)
				stayedPrev = append(stayedPrev, pp.Index)
			}
		}
		for j, keep := range longestIncreasing(stayedPrev) {
			if !keep {
				kind[stayedAt[j]] = OpMoveItem
			}
		}
		for i, it := range rows {
			to := Position{Section: sec, Index: i}
			switch kind[i] {
			case OpInsertItem:
				rowOps = append(rowOps, Operation{Type: OpInsertItem, Item: it, To: &to})
				emitted[it] = OpInsertItem
				plan.Summary.ItemInserts++
			case OpMoveItem:
				from := prevPos[it]
				rowOps = append(rowOps, Operation{Type: OpMoveItem, Item: it, From: &from, To: &to})
				emitted[it] = OpMoveItem
				plan.Summary.Moves++
			}
		}
	}

	// Mark phase. Reload wins over reconfigure when both are set; a move
	// carries the reload to the new position; a freshly inserted row is
	// already new and needs neither. A reconfigure is suppressed whenever
	// the row got a structural op, since the redraw covers the content.
	var reconfigs, reloads []Operation
	for _, sec := range nextSecs {
		rows, _ := next.ItemIdentifiers(sec)
		for i, it := range rows {
			switch {
			case next.IsReloaded(it):
				if _, inPrev := prevPos[it]; !inPrev {
					return nil, fmt.Errorf("%w: %s", ErrIdentityConflict, it)
				}
				if emitted[it] == OpInsertItem {
					continue
				}
				to := Position{Section: sec, Index: i}
				reloads = append(reloads, Operation{Type: OpReloadItem, Item: it, To: &to})
				plan.Summary.Reloads++
			case next.IsReconfigured(it):
				if _, structural := emitted[it]; structural {
					continue
				}
				pp, inPrev := prevPos[it]
				if !inPrev || pp.Section != sec {
					continue
				}
				to := Position{Section: sec, Index: i}
				reconfigs = append(reconfigs, Operation{Type: OpReconfigureItem, Item: it, To: &to})
				plan.Summary.Reconfigures++
			}
		}
	}

	ops := make([]Operation, 0, len(itemDeletes)+len(secDeletes)+len(secInserts)+len(rowOps)+len(reconfigs)+len(reloads))
	ops = append(ops, itemDeletes...)
	ops = append(ops, secDeletes...)
	ops = append(ops, secInserts...)
	ops = append(ops, rowOps...)
	ops = append(ops, reconfigs...)
	ops = append(ops, reloads...)
	plan.Operations = ops
	return plan, nil
}

// positionIndex maps every item of a snapshot to its position.
func positionIndex(s *snapshot.Snapshot, secs []snapshot.SectionID) map[snapshot.ItemID]Position {
	index := make(map[snapshot.ItemID]Position, s.NumberOfItems())
	for _, sec := range secs {
		rows, _ := s.ItemIdentifiers(sec)
		for i, it := range rows {
			index[it] = Position{Section: sec, Index: i}
		}
	}
	return index
}

// longestIncreasing returns, for each element of seq, whether it belongs to
// the longest strictly increasing subsequence found by patience sorting.
// Elements of seq are distinct. Deterministic for a given input.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}
	tails := make([]int, 0, len(seq))
	back := make([]int, len(seq))
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			back[i] = tails[lo-1]
		} else {
			back[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}
	for i := tails[len(tails)-1]; i >= 0; i = back[i] {
		keep[i] = true
	}
	return keep
}
