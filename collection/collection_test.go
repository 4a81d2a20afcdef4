package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/pageobject/collection"
)

// recorder is a Handle that remembers every Locate call made through it or
// any handle derived from it.
type recorder struct {
	path  string
	calls *[]string
}

func newRecorder(path string) *recorder {
	return &recorder{path: path, calls: &[]string{}}
}

func (r *recorder) Locate(selector string) *recorder {
	*r.calls = append(*r.calls, r.path+" >> "+selector)
	return &recorder{path: r.path + " >> " + selector, calls: r.calls}
}

type rowCollection struct {
	collection.Collection[*recorder]
}

func newRowCollection(root *recorder) rowCollection {
	return rowCollection{collection.New(root)}
}

type tableCollection struct {
	collection.Collection[*recorder]
}

func (t tableCollection) rows() rowCollection {
	return collection.NestSelector(t.Collection, newRowCollection, "tr")
}

func (t tableCollection) caption() *recorder {
	return t.El("caption")
}

func TestNewKeepsRoot(t *testing.T) {
	h := newRecorder("table")
	c := collection.New(h)
	assert.Same(t, h, c.Root())
	assert.Empty(t, *h.calls, "construction must not resolve anything")
}

func TestElDelegatesOnce(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"td", "table >> td"},
		{"#id .klass", "table >> #id .klass"},
		{"", "table >> "},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			h := newRecorder("table")
			got := collection.New(h).El(tt.selector)
			require.Len(t, *h.calls, 1)
			assert.Equal(t, tt.want, (*h.calls)[0])
			assert.Equal(t, tt.want, got.path)
		})
	}
}

func TestElRepeatedCallsAreEquivalent(t *testing.T) {
	c := collection.New(newRecorder("root"))
	a, b := c.El("li"), c.El("li")
	assert.Equal(t, a.path, b.path)
	assert.Len(t, *c.Root().calls, 2)
}

func TestNestSelectorResolvesAgainstRoot(t *testing.T) {
	h := newRecorder("table")
	rows := tableCollection{collection.New(h)}.rows()
	require.Len(t, *h.calls, 1)
	assert.Equal(t, "table >> tr", rows.Root().path)
}

func TestNestSelectorEqualsNestAtPreResolved(t *testing.T) {
	h := newRecorder("table")
	c := collection.New(h)

	bySelector := collection.NestSelector(c, newRowCollection, "tbody tr")
	byHandle := collection.NestAt(c, newRowCollection, h.Locate("tbody tr"))

	assert.Equal(t, byHandle.Root().path, bySelector.Root().path)
}

func TestNestAtUsesHandleUnmodified(t *testing.T) {
	h := newRecorder("table")
	other := newRecorder("elsewhere")

	rows := collection.NestAt(collection.New(h), newRowCollection, other)
	assert.Same(t, other, rows.Root())
	assert.Empty(t, *h.calls)
	assert.Empty(t, *other.calls)
}

func TestNestRoot(t *testing.T) {
	h := newRecorder("list")
	resolved := newRecorder("item")

	tests := []struct {
		name  string
		root  collection.Root[*recorder]
		want  string
		calls int
	}{
		{"selector", collection.Selector[*recorder]("li"), "list >> li", 1},
		{"handle", collection.At(resolved), "item", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*h.calls = nil
			got := collection.Nest(collection.New(h), newRowCollection, tt.root)
			assert.Equal(t, tt.want, got.Root().path)
			assert.Len(t, *h.calls, tt.calls)
		})
	}
}

func TestRootVariant(t *testing.T) {
	sel := collection.Selector[*recorder]("tr")
	assert.False(t, sel.IsResolved())
	assert.Equal(t, "tr", sel.Selector())
	_, ok := sel.Handle()
	assert.False(t, ok)
	assert.Equal(t, `selector("tr")`, sel.String())

	h := newRecorder("row")
	at := collection.At(h)
	assert.True(t, at.IsResolved())
	assert.Empty(t, at.Selector())
	got, ok := at.Handle()
	assert.True(t, ok)
	assert.Same(t, h, got)
}

func TestEmbeddedHelpers(t *testing.T) {
	h := newRecorder("table")
	table := tableCollection{collection.New(h)}
	assert.Equal(t, "table >> caption", table.caption().path)
	assert.Same(t, h, table.Root())
}
