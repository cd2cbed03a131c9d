package shell

// Cart is an insertion-ordered set of product ids. The zero value is empty and
// ready to use. Cart is not safe for concurrent use; Shell guards its own.
type Cart struct {
	ids   []string
	index map[string]struct{}
}

// Toggle adds id when absent and removes it when present. It returns the new
// membership of id.
func (c *Cart) Toggle(id string) bool {
	if c.index == nil {
		c.index = map[string]struct{}{}
	}
	if _, ok := c.index[id]; ok {
		delete(c.index, id)
		for i, v := range c.ids {
			if v == id {
				c.ids = append(c.ids[:i], c.ids[i+1:]...)
				break
			}
		}
		return false
	}
	c.index[id] = struct{}{}
	c.ids = append(c.ids, id)
	return true
}

// Contains reports membership of id.
func (c *Cart) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len is the number of distinct ids in the cart.
func (c *Cart) Len() int { return len(c.ids) }

// IDs returns a copy of the members in insertion order.
func (c *Cart) IDs() []string {
	if len(c.ids) == 0 {
		return []string{}
	}
	return append([]string(nil), c.ids...)
}
