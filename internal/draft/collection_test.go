package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffynunes09/create-resume/internal/types"
)

func skillCollection(names ...string) *Collection[types.Skill] {
	c := NewCollection[types.Skill]()
	for _, name := range names {
		c.Add(types.Skill{ID: name, Name: name})
	}
	return c
}

func ids(c *Collection[types.Skill]) []string {
	items := c.Items()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ItemID()
	}
	return out
}

func TestCollection_AddAppendsAtEnd(t *testing.T) {
	c := skillCollection("a", "b")
	c.Add(types.Skill{ID: "c", Name: "c"})

	assert.Equal(t, []string{"a", "b", "c"}, ids(c))
	assert.Equal(t, 3, c.Len())
}

func TestCollection_RemoveUnknownIDIsNoOp(t *testing.T) {
	c := skillCollection("a", "b", "c")

	c.Remove("b")
	assert.Equal(t, []string{"a", "c"}, ids(c))

	c.Remove("nope")
	assert.Equal(t, []string{"a", "c"}, ids(c))
}

func TestCollection_UpdateTouchesOnlyTarget(t *testing.T) {
	c := skillCollection("a", "b", "c")

	c.Update("b", func(s types.Skill) types.Skill {
		s.Name = "renamed"
		return s
	})

	item, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "renamed", item.Name)

	other, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", other.Name)

	// Unknown id: nothing changes
	c.Update("nope", func(s types.Skill) types.Skill {
		s.Name = "ghost"
		return s
	})
	assert.Equal(t, []string{"a", "b", "c"}, ids(c))
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	c := skillCollection("a", "b")

	items := c.Items()
	items[0] = types.Skill{ID: "x", Name: "x"}

	assert.Equal(t, []string{"a", "b"}, ids(c))
}

func TestCollection_ReorderForward(t *testing.T) {
	c := skillCollection("a", "b", "c", "d")

	c.Reorder(0, 2)

	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(c))
}

func TestCollection_ReorderBackward(t *testing.T) {
	c := skillCollection("a", "b", "c", "d")

	c.Reorder(3, 1)

	assert.Equal(t, []string{"a", "d", "b", "c"}, ids(c))
}

func TestCollection_ReorderNoOps(t *testing.T) {
	c := skillCollection("a", "b", "c")

	c.Reorder(1, 1)
	c.Reorder(-1, 2)
	c.Reorder(0, 3)
	c.Reorder(5, 0)

	assert.Equal(t, []string{"a", "b", "c"}, ids(c))
}

func TestCollection_ReorderPreservesItems(t *testing.T) {
	c := skillCollection("a", "b", "c", "d", "e")

	c.Reorder(4, 0)
	c.Reorder(2, 3)
	c.Reorder(0, 4)

	got := ids(c)
	assert.Len(t, got, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		assert.Contains(t, got, id)
	}
}

func TestReorderGesture_ResolvesCurrentPositions(t *testing.T) {
	c := skillCollection("a", "b", "c", "d")

	// A reorder between drag start and release shifts positions; the
	// gesture must land on where the target is now.
	c.Reorder(0, 3) // b c d a
	ReorderGesture(c, "d", "b")

	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(c))
}

func TestReorderGesture_NoOps(t *testing.T) {
	c := skillCollection("a", "b", "c")

	ReorderGesture(c, "a", "a")
	ReorderGesture(c, "a", "gone")
	ReorderGesture(c, "gone", "a")

	assert.Equal(t, []string{"a", "b", "c"}, ids(c))
}

func TestMoveUpDown(t *testing.T) {
	c := skillCollection("a", "b", "c")

	MoveUp(c, "b")
	assert.Equal(t, []string{"b", "a", "c"}, ids(c))

	MoveUp(c, "b") // already first
	assert.Equal(t, []string{"b", "a", "c"}, ids(c))

	MoveDown(c, "a")
	assert.Equal(t, []string{"b", "c", "a"}, ids(c))

	MoveDown(c, "a") // already last
	assert.Equal(t, []string{"b", "c", "a"}, ids(c))

	MoveUp(c, "gone")
	MoveDown(c, "gone")
	assert.Equal(t, []string{"b", "c", "a"}, ids(c))
}

func TestCollection_IndexOf(t *testing.T) {
	c := skillCollection("a", "b")

	assert.Equal(t, 0, c.IndexOf("a"))
	assert.Equal(t, 1, c.IndexOf("b"))
	assert.Equal(t, -1, c.IndexOf("missing"))
}
