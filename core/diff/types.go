package diff

import (
	"errors"

	"listkit/core/snapshot"
)

// ErrIdentityConflict indicates a reload mark on an identity that does not
// exist in the previous snapshot. Reload assumes a stable identity; when the
// caller replaced an item with a different identity occupying the same
// semantic slot, the change must be expressed as delete plus insert instead.
var ErrIdentityConflict = errors.New("reload requested for an identity not present in the previous snapshot")

// OpType discriminates the operation variants of a plan.
type OpType string

const (
	// OpInsertSection inserts an empty section at SectionIndex.
	OpInsertSection OpType = "insert_section"
	// OpDeleteSection removes a section and every row still in it.
	OpDeleteSection OpType = "delete_section"
	// OpInsertItem inserts a row at To.
	OpInsertItem OpType = "insert_item"
	// OpDeleteItem removes the row that was at From.
	OpDeleteItem OpType = "delete_item"
	// OpMoveItem relocates a row from From to To, possibly across sections.
	// Visually realized as remove plus insert, animated as a single move.
	OpMoveItem OpType = "move_item"
	// OpReconfigureItem refreshes a row's content in place at To without
	// destroying its visual element.
	OpReconfigureItem OpType = "reconfigure_item"
	// OpReloadItem destroys and recreates the row's visual element at To,
	// picking up structural changes such as a new row height.
	OpReloadItem OpType = "reload_item"
)

// Position addresses a row by section and in-section index.
type Position struct {
	// Section is the containing section.
	Section snapshot.SectionID `json:"section"`
	// Index is the ordinal position within the section.
	Index int `json:"index"`
}

// Operation is one step of a plan. Section and SectionIndex are set for
// section operations; Item, From and To for item operations. From addresses
// the previous layout, To the next layout.
type Operation struct {
	// Type discriminates which fields are meaningful.
	Type OpType `json:"type"`

	// Section is the target of a section operation.
	Section snapshot.SectionID `json:"section,omitempty"`
	// SectionIndex is the previous index for deletes, the next index for inserts.
	SectionIndex int `json:"section_index,omitempty"`

	// Item is the target of an item operation.
	Item snapshot.ItemID `json:"item,omitempty"`
	// From is the row's position in the previous layout.
	From *Position `json:"from,omitempty"`
	// To is the row's position in the next layout.
	To *Position `json:"to,omitempty"`
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	// SectionInserts counts inserted sections, including rebuilt ones.
	SectionInserts int `json:"section_inserts"`
	// SectionDeletes counts deleted sections, including rebuilt ones.
	SectionDeletes int `json:"section_deletes"`
	// ItemInserts counts inserted rows.
	ItemInserts int `json:"item_inserts"`
	// ItemDeletes counts deleted rows.
	ItemDeletes int `json:"item_deletes"`
	// Moves counts relocated rows, in-section and cross-section.
	Moves int `json:"moves"`
	// Reconfigures counts in-place content refreshes.
	Reconfigures int `json:"reconfigures"`
	// Reloads counts destroy-and-recreate refreshes.
	Reloads int `json:"reloads"`
}

// Plan is the ordered operation list produced by Compute.
type Plan struct {
	// Operations in application order; see the package documentation.
	Operations []Operation `json:"operations"`
	// Summary holds aggregate counts.
	Summary Summary `json:"summary"`
}

// Empty reports whether the plan contains no operations.
func (p *Plan) Empty() bool {
	return len(p.Operations) == 0
}
