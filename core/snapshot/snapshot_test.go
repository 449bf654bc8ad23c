package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// build constructs a snapshot from ordered section/item pairs, failing the
// test on any error.
func build(t *testing.T, sections map[SectionID][]ItemID, order ...SectionID) *Snapshot {
	t.Helper()
	s := New()
	assert.NoError(t, s.AppendSections(order...))
	for _, sec := range order {
		assert.NoError(t, s.AppendItems(sec, sections[sec]...))
	}
	return s
}

func TestAppendSections(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		s := New()
		assert.NoError(t, s.AppendSections("a", "b"))
		assert.NoError(t, s.AppendSections("c"))
		assert.Equal(t, []SectionID{"a", "b", "c"}, s.SectionIdentifiers())
	})

	t.Run("DuplicateFails", func(t *testing.T) {
		s := New()
		assert.NoError(t, s.AppendSections("a"))
		err := s.AppendSections("b", "a")
		assert.ErrorIs(t, err, ErrDuplicateSection)
		// Atomic: "b" must not have been added either.
		assert.Equal(t, []SectionID{"a"}, s.SectionIdentifiers())
	})

	t.Run("DuplicateWithinArgsFails", func(t *testing.T) {
		s := New()
		err := s.AppendSections("a", "a")
		assert.ErrorIs(t, err, ErrDuplicateSection)
		assert.Zero(t, s.NumberOfSections())
	})
}

func TestInsertSections(t *testing.T) {
	s := New()
	assert.NoError(t, s.AppendSections("a", "c"))
	assert.NoError(t, s.InsertSectionsBefore("c", "b"))
	assert.NoError(t, s.InsertSectionsAfter("c", "d"))
	assert.Equal(t, []SectionID{"a", "b", "c", "d"}, s.SectionIdentifiers())

	err := s.InsertSectionsBefore("nope", "x")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestAppendItems(t *testing.T) {
	t.Run("UnknownSectionFails", func(t *testing.T) {
		s := New()
		err := s.AppendItems("missing", "x")
		assert.ErrorIs(t, err, ErrUnknownSection)
	})

	t.Run("IdentityCollisionAcrossSectionsIsAtomic", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}, "b": {"z"}}, "a", "b")
		// "x" already lives in section a; appending it to b must fail and
		// leave the snapshot untouched, including the non-colliding "y".
		err := s.AppendItems("b", "y", "x")
		assert.ErrorIs(t, err, ErrDuplicateItem)
		rows, _ := s.ItemIdentifiers("b")
		assert.Equal(t, []ItemID{"z"}, rows)
		assert.False(t, s.ContainsItem("y"))
	})
}

func TestInsertItems(t *testing.T) {
	s := build(t, map[SectionID][]ItemID{"a": {"x", "z"}}, "a")
	assert.NoError(t, s.InsertItemsBefore("z", "y"))
	assert.NoError(t, s.InsertItemsAfter("z", "w"))
	rows, _ := s.ItemIdentifiers("a")
	assert.Equal(t, []ItemID{"x", "y", "z", "w"}, rows)

	err := s.InsertItemsBefore("missing", "v")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestDeleteItems(t *testing.T) {
	t.Run("RemovesAndForgets", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y"}}, "a")
		s.DeleteItems("x")
		rows, _ := s.ItemIdentifiers("a")
		assert.Equal(t, []ItemID{"y"}, rows)
		assert.False(t, s.ContainsItem("x"))
	})

	t.Run("AbsentIsSilentNoop", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
		s.DeleteItems("ghost")
		s.DeleteItems("x")
		s.DeleteItems("x") // idempotent
		assert.Zero(t, s.NumberOfItems())
	})
}

func TestDeleteSections(t *testing.T) {
	s := build(t, map[SectionID][]ItemID{"a": {"x"}, "b": {"y"}}, "a", "b")
	s.DeleteSections("a", "ghost")
	assert.Equal(t, []SectionID{"b"}, s.SectionIdentifiers())
	assert.False(t, s.ContainsItem("x"))
	assert.True(t, s.ContainsItem("y"))
}

func TestMoveItem(t *testing.T) {
	t.Run("WithinSection", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y", "z"}}, "a")
		assert.NoError(t, s.MoveItemAfter("x", "z"))
		rows, _ := s.ItemIdentifiers("a")
		assert.Equal(t, []ItemID{"y", "z", "x"}, rows)
	})

	t.Run("AcrossSections", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y"}, "b": {"z"}}, "a", "b")
		assert.NoError(t, s.MoveItemBefore("x", "z"))
		aRows, _ := s.ItemIdentifiers("a")
		bRows, _ := s.ItemIdentifiers("b")
		assert.Equal(t, []ItemID{"y"}, aRows)
		assert.Equal(t, []ItemID{"x", "z"}, bRows)
		sec, idx, ok := s.LocateItem("x")
		assert.True(t, ok)
		assert.Equal(t, SectionID("b"), sec)
		assert.Equal(t, 0, idx)
	})

	t.Run("UnknownItemOrAnchorFails", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
		assert.ErrorIs(t, s.MoveItemBefore("ghost", "x"), ErrUnknownItem)
		assert.ErrorIs(t, s.MoveItemBefore("x", "ghost"), ErrUnknownItem)
	})
}

func TestReplaceSectionItems(t *testing.T) {
	t.Run("ReordersInPlace", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y", "z"}}, "a")
		assert.NoError(t, s.ReplaceSectionItems("a", []ItemID{"z", "x", "y"}))
		rows, _ := s.ItemIdentifiers("a")
		assert.Equal(t, []ItemID{"z", "x", "y"}, rows)
	})

	t.Run("RejectsItemsOwnedElsewhere", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}, "b": {"y"}}, "a", "b")
		err := s.ReplaceSectionItems("a", []ItemID{"x", "y"})
		assert.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("DropsItemsLeftOut", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y"}}, "a")
		assert.NoError(t, s.ReplaceSectionItems("a", []ItemID{"y"}))
		assert.False(t, s.ContainsItem("x"))
	})
}

func TestMarks(t *testing.T) {
	t.Run("ReconfigureUnknownFails", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
		assert.ErrorIs(t, s.ReconfigureItems("ghost"), ErrUnknownItem)
		assert.ErrorIs(t, s.ReloadItems("ghost"), ErrUnknownItem)
	})

	t.Run("MarkAndClear", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x", "y"}}, "a")
		assert.NoError(t, s.ReconfigureItems("x"))
		assert.NoError(t, s.ReloadItems("y"))
		assert.True(t, s.IsReconfigured("x"))
		assert.True(t, s.IsReloaded("y"))
		s.ClearMarks()
		assert.False(t, s.IsReconfigured("x"))
		assert.False(t, s.IsReloaded("y"))
	})

	t.Run("DeletionDropsMarks", func(t *testing.T) {
		s := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
		assert.NoError(t, s.ReconfigureItems("x"))
		s.DeleteItems("x")
		assert.False(t, s.IsReconfigured("x"))
	})
}

func TestIndexes(t *testing.T) {
	s := build(t, map[SectionID][]ItemID{"a": {"x", "y"}, "b": {"z"}}, "a", "b")

	i, ok := s.IndexOfSection("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	// Overall index counts across sections in section order.
	i, ok = s.IndexOfItem("z")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = s.IndexOfItem("ghost")
	assert.False(t, ok)

	assert.Equal(t, 3, s.NumberOfItems())
	assert.Equal(t, 2, s.NumberOfSections())
}

func TestCloneIsIndependent(t *testing.T) {
	s := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
	assert.NoError(t, s.ReconfigureItems("x"))

	c := s.Clone()
	assert.True(t, s.Equal(c))
	assert.True(t, c.IsReconfigured("x"))

	assert.NoError(t, c.AppendItems("a", "y"))
	c.ClearMarks()
	assert.False(t, s.ContainsItem("y"))
	assert.True(t, s.IsReconfigured("x"))
	assert.False(t, s.Equal(c))
}

func TestEqualIgnoresMarks(t *testing.T) {
	a := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
	b := build(t, map[SectionID][]ItemID{"a": {"x"}}, "a")
	assert.NoError(t, b.ReconfigureItems("x"))
	assert.True(t, a.Equal(b))
}
