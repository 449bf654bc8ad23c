package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listkit/core/diff"
	"listkit/core/snapshot"
)

func twoGroups(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	s := snapshot.New()
	assert.NoError(t, s.AppendSections("a", "b"))
	assert.NoError(t, s.AppendItems("a", "x", "y", "z"))
	assert.NoError(t, s.AppendItems("b", "q"))
	return s
}

func TestCanMove(t *testing.T) {
	at := diff.Position{Section: "a", Index: 0}
	assert.False(t, Policy{}.CanMove(at))
	assert.True(t, Policy{Enabled: true}.CanMove(at))
}

func TestProposeMove_InGroup(t *testing.T) {
	p := Policy{Enabled: true}
	current := twoGroups(t)

	next, moved, err := p.ProposeMove(current,
		diff.Position{Section: "a", Index: 0},
		diff.Position{Section: "a", Index: 2},
	)
	assert.NoError(t, err)
	assert.True(t, moved)

	rows, _ := next.ItemIdentifiers("a")
	assert.Equal(t, []snapshot.ItemID{"y", "z", "x"}, rows)
	// The input snapshot is never mutated.
	rows, _ = current.ItemIdentifiers("a")
	assert.Equal(t, []snapshot.ItemID{"x", "y", "z"}, rows)
}

// A rejected cross-group move must leave the snapshot structurally
// identical to the pre-attempt state.
func TestProposeMove_CrossGroupRejected(t *testing.T) {
	p := Policy{Enabled: true, AllowCrossSection: false}
	current := twoGroups(t)
	before := current.Clone()

	next, moved, err := p.ProposeMove(current,
		diff.Position{Section: "a", Index: 1},
		diff.Position{Section: "b", Index: 0},
	)
	assert.NoError(t, err)
	assert.False(t, moved)
	assert.True(t, next.Equal(before))
}

func TestProposeMove_CrossGroupAllowed(t *testing.T) {
	p := Policy{Enabled: true, AllowCrossSection: true}
	current := twoGroups(t)

	next, moved, err := p.ProposeMove(current,
		diff.Position{Section: "a", Index: 1},
		diff.Position{Section: "b", Index: 1},
	)
	assert.NoError(t, err)
	assert.True(t, moved)

	aRows, _ := next.ItemIdentifiers("a")
	bRows, _ := next.ItemIdentifiers("b")
	assert.Equal(t, []snapshot.ItemID{"x", "z"}, aRows)
	assert.Equal(t, []snapshot.ItemID{"q", "y"}, bRows)
}

func TestProposeMove_Disabled(t *testing.T) {
	p := Policy{}
	current := twoGroups(t)
	next, moved, err := p.ProposeMove(current,
		diff.Position{Section: "a", Index: 0},
		diff.Position{Section: "a", Index: 1},
	)
	assert.NoError(t, err)
	assert.False(t, moved)
	assert.True(t, next.Equal(current))
}

func TestProposeMove_BadPositions(t *testing.T) {
	p := Policy{Enabled: true, AllowCrossSection: true}
	current := twoGroups(t)

	_, _, err := p.ProposeMove(current,
		diff.Position{Section: "ghost", Index: 0},
		diff.Position{Section: "a", Index: 0},
	)
	assert.ErrorIs(t, err, snapshot.ErrUnknownSection)

	_, _, err = p.ProposeMove(current,
		diff.Position{Section: "a", Index: 9},
		diff.Position{Section: "a", Index: 0},
	)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)

	_, _, err = p.ProposeMove(current,
		diff.Position{Section: "a", Index: 0},
		diff.Position{Section: "b", Index: 5},
	)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
}
