package pagemap

import (
	"github.com/pkg/errors"

	"github.com/heathj/pageobject/collection"
)

var ErrUnknownName = errors.New("unknown name")

// Region is a page map bound to a handle.
type Region[H collection.Handle[H]] struct {
	collection.Collection[H]

	spec *Spec
	path string
}

// Bind roots spec at root. The spec's own selector is not applied; use
// Region on the parent, or locate it first, to scope by it. A nil spec binds
// an empty region.
func Bind[H collection.Handle[H]](spec *Spec, root H) *Region[H] {
	if spec == nil {
		spec = &Spec{}
	}
	return &Region[H]{Collection: collection.New(root), spec: spec, path: spec.label()}
}

func (r *Region[H]) Path() string {
	return r.path
}

// Element resolves a named element of the region.
func (r *Region[H]) Element(name string) (H, error) {
	sel, ok := r.spec.Elements[name]
	if !ok {
		var zero H
		return zero, errors.Wrapf(ErrUnknownName, "element %s.%s", r.path, name)
	}
	return r.El(sel), nil
}

// Region returns a named nested region.
func (r *Region[H]) Region(name string) (*Region[H], error) {
	sub, ok := r.spec.Regions[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownName, "region %s.%s", r.path, name)
	}
	path := r.path + "." + name
	return collection.NestSelector(r.Collection, func(h H) *Region[H] {
		return &Region[H]{Collection: collection.New(h), spec: sub, path: path}
	}, sub.Selector), nil
}

// Names returns the element names of the region, sorted.
func (r *Region[H]) Names() []string {
	return sortedKeys(r.spec.Elements)
}

// RegionNames returns the nested region names, sorted.
func (r *Region[H]) RegionNames() []string {
	return sortedKeys(r.spec.Regions)
}

// Walk visits every element, depth first, elements before regions. Paths are
// dotted and relative to r. A non-nil error from fn stops the walk.
func (r *Region[H]) Walk(fn func(path string, h H) error) error {
	return r.walk("", fn)
}

func (r *Region[H]) walk(prefix string, fn func(string, H) error) error {
	for _, name := range r.Names() {
		h, _ := r.Element(name)
		if err := fn(prefix+name, h); err != nil {
			return err
		}
	}
	for _, name := range r.RegionNames() {
		sub, _ := r.Region(name)
		if err := sub.walk(prefix+name+".", fn); err != nil {
			return err
		}
	}
	return nil
}
