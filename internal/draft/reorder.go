package draft

// ReorderGesture applies a drag-release over a target item. Positions are
// resolved from the collection's current state at the moment of release,
// never from indices cached at drag start, so the gesture stays correct
// across intervening renders. Releasing on the source item itself or on an
// id no longer present is a no-op.
//
// The gesture recognizer in front of this (pointer or keyboard driven) is
// expected to apply its own activation threshold so that clicks on inner
// form controls do not turn into reorders; by the time this is called the
// gesture is already committed.
func ReorderGesture[T Item](c *Collection[T], sourceID, targetID string) {
	if sourceID == targetID {
		return
	}
	from := c.IndexOf(sourceID)
	to := c.IndexOf(targetID)
	if from < 0 || to < 0 {
		return
	}
	c.Reorder(from, to)
}

// MoveUp swaps the item with its predecessor. Produces the same
// permutation a one-step drag in that direction would.
func MoveUp[T Item](c *Collection[T], id string) {
	i := c.IndexOf(id)
	if i <= 0 {
		return
	}
	c.Reorder(i, i-1)
}

// MoveDown swaps the item with its successor.
func MoveDown[T Item](c *Collection[T], id string) {
	i := c.IndexOf(id)
	if i < 0 || i >= c.Len()-1 {
		return
	}
	c.Reorder(i, i+1)
}
