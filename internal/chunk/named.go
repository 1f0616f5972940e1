package chunk

// Named is an ordered collection of records that are also addressable by
// their engine-assigned name. When a name repeats the later record wins the
// lookup; both stay in the ordered list.
type Named[T any] struct {
	items []*T
	index map[string]*T
}

func (n *Named[T]) add(name string, v *T) {
	if n.index == nil {
		n.index = make(map[string]*T)
	}
	n.items = append(n.items, v)
	n.index[name] = v
}

// Get returns the record called name
func (n *Named[T]) Get(name string) (*T, bool) {
	v, ok := n.index[name]
	return v, ok
}

// All returns the records in table order
func (n *Named[T]) All() []*T {
	return n.items
}

// Len returns the number of records
func (n *Named[T]) Len() int {
	return len(n.items)
}
