// Package draft holds the in-memory resume document being edited and the
// ordered-collection editing primitive shared by experiences, education
// and skills.
package draft

// Item is any record with a stable unique id. Ids are generated once at
// creation and never reassigned; reordering only changes positions.
type Item interface {
	ItemID() string
}

// Collection is an ordered list of items edited through add, remove,
// per-item update and reorder operations. Operations addressing an unknown
// id or an out-of-range index are silent no-ops: editing must never fail
// locally.
type Collection[T Item] struct {
	items []T
}

// NewCollection creates a collection seeded with the given items.
func NewCollection[T Item](items ...T) *Collection[T] {
	c := &Collection[T]{}
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the current items in display order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Add appends an item to the end of the collection.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
}

// Remove drops the item with the given id. Unknown ids are a no-op.
func (c *Collection[T]) Remove(id string) {
	for i, item := range c.items {
		if item.ItemID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Update replaces the item with the given id by the result of mutate,
// leaving every other item untouched. Unknown ids are a no-op.
func (c *Collection[T]) Update(id string, mutate func(T) T) {
	for i, item := range c.items {
		if item.ItemID() == id {
			c.items[i] = mutate(item)
			return
		}
	}
}

// Get returns the item with the given id and whether it was found.
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, item := range c.items {
		if item.ItemID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// IndexOf returns the current position of the item with the given id, or
// -1 when absent.
func (c *Collection[T]) IndexOf(id string) int {
	for i, item := range c.items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// Reorder removes the element at from and reinserts it at to, shifting
// intervening elements. The operation is a pure permutation: ids and
// fields are untouched. Out-of-bounds or equal indices are a no-op.
func (c *Collection[T]) Reorder(from, to int) {
	if from == to {
		return
	}
	if from < 0 || from >= len(c.items) || to < 0 || to >= len(c.items) {
		return
	}
	item := c.items[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	rest := append([]T{}, c.items[to:]...)
	c.items = append(append(c.items[:to:to], item), rest...)
}
