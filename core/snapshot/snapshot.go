package snapshot

import (
	"fmt"
	"slices"
)

// SectionID identifies a section. Equality is by value; ordering is the
// sequence in which sections were added to the snapshot.
type SectionID string

// ItemID identifies an item. The caller derives it from whatever subset of
// the item's fields constitutes its logical identity.
type ItemID string

// Snapshot is an ordered collection of sections, each holding an ordered
// list of item identifiers. The zero value is not usable; construct with New.
type Snapshot struct {
	sections []SectionID
	items    map[SectionID][]ItemID

	// owner maps every item to its containing section for O(1) membership
	// checks regardless of list size.
	owner map[ItemID]SectionID

	// reconfigured and reloaded mark items for special diff treatment.
	// Marks are directives for the next diff, not part of the layout.
	reconfigured map[ItemID]struct{}
	reloaded     map[ItemID]struct{}
}

// New returns an empty snapshot.
func New() *Snapshot {
	return &Snapshot{
		items:        make(map[SectionID][]ItemID),
		owner:        make(map[ItemID]SectionID),
		reconfigured: make(map[ItemID]struct{}),
		reloaded:     make(map[ItemID]struct{}),
	}
}

// AppendSections adds sections at the end of the snapshot, preserving the
// argument order. Adding a section that already exists (or appears twice in
// the arguments) fails with ErrDuplicateSection and leaves the snapshot
// unmodified.
func (s *Snapshot) AppendSections(ids ...SectionID) error {
	if err := s.validateNewSections(ids); err != nil {
		return err
	}
	for _, id := range ids {
		s.sections = append(s.sections, id)
		s.items[id] = nil
	}
	return nil
}

// InsertSectionsBefore adds sections immediately before the anchor section.
func (s *Snapshot) InsertSectionsBefore(anchor SectionID, ids ...SectionID) error {
	return s.insertSections(anchor, 0, ids)
}

// InsertSectionsAfter adds sections immediately after the anchor section.
func (s *Snapshot) InsertSectionsAfter(anchor SectionID, ids ...SectionID) error {
	return s.insertSections(anchor, 1, ids)
}

func (s *Snapshot) insertSections(anchor SectionID, offset int, ids []SectionID) error {
	at, ok := s.IndexOfSection(anchor)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSection, anchor)
	}
	if err := s.validateNewSections(ids); err != nil {
		return err
	}
	s.sections = slices.Insert(s.sections, at+offset, ids...)
	for _, id := range ids {
		s.items[id] = nil
	}
	return nil
}

func (s *Snapshot) validateNewSections(ids []SectionID) error {
	seen := make(map[SectionID]struct{}, len(ids))
	for _, id := range ids {
		if _, exists := s.items[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateSection, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSection, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// AppendItems adds items at the end of the given section, preserving the
// argument order. The call is atomic: if the section is unknown, or any item
// already exists anywhere in the snapshot (identity collision), or an item
// appears twice in the arguments, the snapshot is left unmodified.
func (s *Snapshot) AppendItems(section SectionID, ids ...ItemID) error {
	if _, exists := s.items[section]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if err := s.validateNewItems(ids); err != nil {
		return err
	}
	s.items[section] = append(s.items[section], ids...)
	for _, id := range ids {
		s.owner[id] = section
	}
	return nil
}

// InsertItemsBefore adds items immediately before the anchor item, in the
// anchor's section. Atomic under the same rules as AppendItems.
func (s *Snapshot) InsertItemsBefore(anchor ItemID, ids ...ItemID) error {
	return s.insertItems(anchor, 0, ids)
}

// InsertItemsAfter adds items immediately after the anchor item.
func (s *Snapshot) InsertItemsAfter(anchor ItemID, ids ...ItemID) error {
	return s.insertItems(anchor, 1, ids)
}

func (s *Snapshot) insertItems(anchor ItemID, offset int, ids []ItemID) error {
	section, at, ok := s.LocateItem(anchor)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, anchor)
	}
	if err := s.validateNewItems(ids); err != nil {
		return err
	}
	s.items[section] = slices.Insert(s.items[section], at+offset, ids...)
	for _, id := range ids {
		s.owner[id] = section
	}
	return nil
}

func (s *Snapshot) validateNewItems(ids []ItemID) error {
	seen := make(map[ItemID]struct{}, len(ids))
	for _, id := range ids {
		if _, exists := s.owner[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// DeleteItems removes items from the snapshot. Identifiers that are not
// present are silently ignored, so deletion is idempotent.
func (s *Snapshot) DeleteItems(ids ...ItemID) {
	for _, id := range ids {
		section, exists := s.owner[id]
		if !exists {
			continue
		}
		s.items[section] = slices.DeleteFunc(s.items[section], func(it ItemID) bool {
			return it == id
		})
		delete(s.owner, id)
		delete(s.reconfigured, id)
		delete(s.reloaded, id)
	}
}

// DeleteSections removes sections and all of their items. Identifiers that
// are not present are silently ignored.
func (s *Snapshot) DeleteSections(ids ...SectionID) {
	for _, id := range ids {
		rows, exists := s.items[id]
		if !exists {
			continue
		}
		for _, it := range rows {
			delete(s.owner, it)
			delete(s.reconfigured, it)
			delete(s.reloaded, it)
		}
		delete(s.items, id)
		s.sections = slices.DeleteFunc(s.sections, func(sec SectionID) bool {
			return sec == id
		})
	}
}

// MoveItemBefore relocates an existing item so it sits immediately before
// the anchor item, moving it across sections when the anchor lives
// elsewhere. Fails if either identifier is unknown.
func (s *Snapshot) MoveItemBefore(id, anchor ItemID) error {
	return s.moveItem(id, anchor, 0)
}

// MoveItemAfter relocates an existing item immediately after the anchor.
func (s *Snapshot) MoveItemAfter(id, anchor ItemID) error {
	return s.moveItem(id, anchor, 1)
}

func (s *Snapshot) moveItem(id, anchor ItemID, offset int) error {
	if id == anchor {
		return fmt.Errorf("%w: %s cannot anchor on itself", ErrUnknownItem, id)
	}
	if _, _, ok := s.LocateItem(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if _, _, ok := s.LocateItem(anchor); !ok {
		return fmt.Errorf("%w: anchor %s", ErrUnknownItem, anchor)
	}

	// Detach first so the anchor's position is resolved against the list
	// without the moving item.
	from := s.owner[id]
	s.items[from] = slices.DeleteFunc(s.items[from], func(it ItemID) bool {
		return it == id
	})

	to, at, _ := s.LocateItem(anchor)
	s.items[to] = slices.Insert(s.items[to], at+offset, id)
	s.owner[id] = to
	return nil
}

// ReplaceSectionItems replaces the entire ordered item list of a section.
// Every new item must either already belong to the section being replaced
// or not exist anywhere in the snapshot; duplicates in the replacement list
// are rejected. This is how interactive reorders enact a new in-group order.
func (s *Snapshot) ReplaceSectionItems(section SectionID, ids []ItemID) error {
	old, exists := s.items[section]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	seen := make(map[ItemID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		seen[id] = struct{}{}
		if owner, ok := s.owner[id]; ok && owner != section {
			return fmt.Errorf("%w: %s belongs to section %s", ErrDuplicateItem, id, owner)
		}
	}
	for _, it := range old {
		if _, kept := seen[it]; !kept {
			delete(s.owner, it)
			delete(s.reconfigured, it)
			delete(s.reloaded, it)
		}
	}
	s.items[section] = slices.Clone(ids)
	for _, id := range ids {
		s.owner[id] = section
	}
	return nil
}

// ReconfigureItems marks items for in-place content refresh on the next
// diff without changing their position. Unknown items are an error.
func (s *Snapshot) ReconfigureItems(ids ...ItemID) error {
	return s.mark(s.reconfigured, ids)
}

// ReloadItems marks items so the next diff destroys and recreates their
// visual representation, used when structural properties such as row size
// depend on content that changed. Unknown items are an error.
func (s *Snapshot) ReloadItems(ids ...ItemID) error {
	return s.mark(s.reloaded, ids)
}

func (s *Snapshot) mark(set map[ItemID]struct{}, ids []ItemID) error {
	for _, id := range ids {
		if _, exists := s.owner[id]; !exists {
			return fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return nil
}

// IsReconfigured reports whether the item carries a reconfigure mark.
func (s *Snapshot) IsReconfigured(id ItemID) bool {
	_, ok := s.reconfigured[id]
	return ok
}

// IsReloaded reports whether the item carries a reload mark.
func (s *Snapshot) IsReloaded(id ItemID) bool {
	_, ok := s.reloaded[id]
	return ok
}

// ClearMarks drops all reconfigure and reload marks. The data source calls
// this after an apply, since marks are directives for a single diff.
func (s *Snapshot) ClearMarks() {
	clear(s.reconfigured)
	clear(s.reloaded)
}

// SectionIdentifiers returns the ordered section identifiers.
func (s *Snapshot) SectionIdentifiers() []SectionID {
	return slices.Clone(s.sections)
}

// ItemIdentifiers returns the ordered item identifiers of a section.
func (s *Snapshot) ItemIdentifiers(section SectionID) ([]ItemID, error) {
	rows, exists := s.items[section]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	return slices.Clone(rows), nil
}

// ContainsSection reports whether the section exists in the snapshot.
func (s *Snapshot) ContainsSection(section SectionID) bool {
	_, exists := s.items[section]
	return exists
}

// ContainsItem reports whether the item exists anywhere in the snapshot.
func (s *Snapshot) ContainsItem(id ItemID) bool {
	_, exists := s.owner[id]
	return exists
}

// IndexOfSection returns the ordinal position of a section.
func (s *Snapshot) IndexOfSection(section SectionID) (int, bool) {
	for i, sec := range s.sections {
		if sec == section {
			return i, true
		}
	}
	return 0, false
}

// LocateItem returns the section and in-section index of an item.
func (s *Snapshot) LocateItem(id ItemID) (SectionID, int, bool) {
	section, exists := s.owner[id]
	if !exists {
		return "", 0, false
	}
	for i, it := range s.items[section] {
		if it == id {
			return section, i, true
		}
	}
	// owner and items are kept in lockstep by every mutation
	return "", 0, false
}

// IndexOfItem returns the overall ordinal position of an item, counting
// across sections in section order.
func (s *Snapshot) IndexOfItem(id ItemID) (int, bool) {
	section, exists := s.owner[id]
	if !exists {
		return 0, false
	}
	offset := 0
	for _, sec := range s.sections {
		if sec == section {
			break
		}
		offset += len(s.items[sec])
	}
	for i, it := range s.items[section] {
		if it == id {
			return offset + i, true
		}
	}
	return 0, false
}

// NumberOfSections returns the section count.
func (s *Snapshot) NumberOfSections() int {
	return len(s.sections)
}

// NumberOfItems returns the total item count across all sections.
func (s *Snapshot) NumberOfItems() int {
	return len(s.owner)
}

// Clone returns a deep copy. Marks are copied as well.
func (s *Snapshot) Clone() *Snapshot {
	out := New()
	out.sections = slices.Clone(s.sections)
	for sec, rows := range s.items {
		out.items[sec] = slices.Clone(rows)
	}
	for id, sec := range s.owner {
		out.owner[id] = sec
	}
	for id := range s.reconfigured {
		out.reconfigured[id] = struct{}{}
	}
	for id := range s.reloaded {
		out.reloaded[id] = struct{}{}
	}
	return out
}

// Equal reports structural equality: same section order and same item order
// per section. Marks are not part of the layout and are ignored.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if other == nil || !slices.Equal(s.sections, other.sections) {
		return false
	}
	for _, sec := range s.sections {
		if !slices.Equal(s.items[sec], other.items[sec]) {
			return false
		}
	}
	return true
}
