package chunk

// Lazy holds an asset that starts unresolved and is resolved at most once.
// The pointer data needed to resolve it lives on the owning record.
type Lazy[T any] struct {
	resolved bool
	value    T
}

// Resolved reports whether a value has been stored
func (l *Lazy[T]) Resolved() bool {
	return l.resolved
}

// Get returns the stored value and whether it has been resolved
func (l *Lazy[T]) Get() (T, bool) {
	return l.value, l.resolved
}

// Set stores v unless a value was already stored
func (l *Lazy[T]) Set(v T) {
	if l.resolved {
		return
	}
	l.value = v
	l.resolved = true
}
