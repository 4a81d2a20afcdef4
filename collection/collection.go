// Package collection is the base for page objects: a Collection is a region
// of a UI tree, scoped to a root handle, from which child elements and nested
// regions are derived.
package collection

// Handle is an opaque reference to a located region of a UI tree. Locate
// returns a new handle scoped under the receiver. Whether resolution is eager
// or lazy, and when it fails, is up to the implementation.
type Handle[H any] interface {
	Locate(selector string) H
}

// Scoped is anything built on a Collection.
type Scoped[H any] interface {
	Root() H
}

// Newable constructs a collection type from its root handle.
type Newable[T any, H any] func(root H) T

// Collection is embedded by page objects. The zero value has a zero root.
type Collection[H Handle[H]] struct {
	root H
}

// New stores root as the collection's scope.
func New[H Handle[H]](root H) Collection[H] {
	return Collection[H]{root: root}
}

// Root returns the handle the collection is scoped to.
func (c Collection[H]) Root() H {
	return c.root
}

// El resolves selector against the collection root.
func (c Collection[H]) El(selector string) H {
	return c.root.Locate(selector)
}

// Resolve normalizes r into a handle. Selectors go through El, handles are
// returned unchanged.
func (c Collection[H]) Resolve(r Root[H]) H {
	if r.resolved {
		return r.handle
	}
	return c.El(r.selector)
}

// Nest builds a nested collection of type T rooted at r.
func Nest[T Scoped[H], H Handle[H]](c Collection[H], newT Newable[T, H], r Root[H]) T {
	return newT(c.Resolve(r))
}

// NestSelector builds a nested collection rooted at selector, resolved
// relative to c.
func NestSelector[T Scoped[H], H Handle[H]](c Collection[H], newT Newable[T, H], selector string) T {
	return Nest(c, newT, Selector[H](selector))
}

// NestAt builds a nested collection rooted at an already resolved handle.
func NestAt[T Scoped[H], H Handle[H]](c Collection[H], newT Newable[T, H], h H) T {
	return Nest(c, newT, At(h))
}
