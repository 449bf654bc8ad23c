package diff

import (
	"fmt"
	"slices"

	"listkit/core/snapshot"
)

// Layout is the renderer-side model of a list: ordered sections with ordered
// rows, keyed by identity. Renderers that track their own visual state apply
// plans to a Layout; it is also the reference implementation of the plan
// application contract used by the engine's tests.
type Layout struct {
	// Sections in display order.
	Sections []snapshot.SectionID `json:"sections"`
	// Items holds the ordered rows of each section.
	Items map[snapshot.SectionID][]snapshot.ItemID `json:"items"`
}

// LayoutOf captures the layout of a snapshot.
func LayoutOf(s *snapshot.Snapshot) *Layout {
	l := &Layout{
		Sections: s.SectionIdentifiers(),
		Items:    make(map[snapshot.SectionID][]snapshot.ItemID, s.NumberOfSections()),
	}
	for _, sec := range l.Sections {
		rows, _ := s.ItemIdentifiers(sec)
		l.Items[sec] = rows
	}
	return l
}

// Apply executes a plan against the layout in plan order. Item removal is
// keyed by identity, insertion by next-layout position; this mirrors batch
// update semantics where deletes address the old state and inserts the new.
func (l *Layout) Apply(p *Plan) error {
	// Rows that move are detached first along with the deleted ones, so
	// every insertion index below lands in the post-removal list.
	removed := make(map[snapshot.ItemID]struct{})
	for _, op := range p.Operations {
		if op.Type == OpDeleteItem || op.Type == OpMoveItem {
			removed[op.Item] = struct{}{}
		}
	}
	if len(removed) > 0 {
		for sec, rows := range l.Items {
			l.Items[sec] = slices.DeleteFunc(rows, func(it snapshot.ItemID) bool {
				_, gone := removed[it]
				return gone
			})
		}
	}

	for _, op := range p.Operations {
		switch op.Type {
		case OpDeleteItem:
			// handled by the removal pass

		case OpDeleteSection:
			if _, exists := l.Items[op.Section]; !exists {
				return fmt.Errorf("delete of unknown section %s", op.Section)
			}
			delete(l.Items, op.Section)
			l.Sections = slices.DeleteFunc(l.Sections, func(sec snapshot.SectionID) bool {
				return sec == op.Section
			})

		case OpInsertSection:
			if op.SectionIndex < 0 || op.SectionIndex > len(l.Sections) {
				return fmt.Errorf("section insert index %d out of range", op.SectionIndex)
			}
			if _, exists := l.Items[op.Section]; exists {
				return fmt.Errorf("insert of duplicate section %s", op.Section)
			}
			l.Sections = slices.Insert(l.Sections, op.SectionIndex, op.Section)
			l.Items[op.Section] = nil

		case OpInsertItem, OpMoveItem:
			rows, exists := l.Items[op.To.Section]
			if !exists {
				return fmt.Errorf("row insert into unknown section %s", op.To.Section)
			}
			if op.To.Index < 0 || op.To.Index > len(rows) {
				return fmt.Errorf("row insert index %d out of range in section %s", op.To.Index, op.To.Section)
			}
			l.Items[op.To.Section] = slices.Insert(rows, op.To.Index, op.Item)

		case OpReconfigureItem, OpReloadItem:
			// Content-only; verify the row sits where the plan says.
			rows := l.Items[op.To.Section]
			if op.To.Index >= len(rows) || rows[op.To.Index] != op.Item {
				return fmt.Errorf("refresh of %s at stale position %s[%d]", op.Item, op.To.Section, op.To.Index)
			}

		default:
			return fmt.Errorf("unknown operation type %q", op.Type)
		}
	}
	return nil
}

// Equal reports whether two layouts describe the same section and row order.
func (l *Layout) Equal(other *Layout) bool {
	if other == nil || !slices.Equal(l.Sections, other.Sections) {
		return false
	}
	for _, sec := range l.Sections {
		if !slices.Equal(l.Items[sec], other.Items[sec]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	out := &Layout{
		Sections: slices.Clone(l.Sections),
		Items:    make(map[snapshot.SectionID][]snapshot.ItemID, len(l.Items)),
	}
	for sec, rows := range l.Items {
		out.Items[sec] = slices.Clone(rows)
	}
	return out
}
