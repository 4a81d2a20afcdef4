package collection

import "fmt"

// Root is where a nested collection starts: either a selector still to be
// resolved against the parent, or a handle that is already resolved.
type Root[H any] struct {
	selector string
	handle   H
	resolved bool
}

// Selector returns an unresolved root.
func Selector[H any](selector string) Root[H] {
	return Root[H]{selector: selector}
}

// At returns a resolved root.
func At[H any](h H) Root[H] {
	return Root[H]{handle: h, resolved: true}
}

// IsResolved reports whether r already holds a handle.
func (r Root[H]) IsResolved() bool {
	return r.resolved
}

// Selector returns the selector of an unresolved root, or "" if resolved.
func (r Root[H]) Selector() string {
	return r.selector
}

// Handle returns the handle of a resolved root. ok is false for selectors.
func (r Root[H]) Handle() (h H, ok bool) {
	return r.handle, r.resolved
}

func (r Root[H]) String() string {
	if r.resolved {
		return fmt.Sprintf("at(%v)", r.handle)
	}
	return fmt.Sprintf("selector(%q)", r.selector)
}
