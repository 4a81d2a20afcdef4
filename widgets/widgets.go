// Package widgets holds page objects for common HTML structures. They work
// with any handle that can be narrowed by index, so the same Table drives a
// dom.Document in tests and a live tab through chrome.
package widgets

import (
	"fmt"
	"strings"

	"github.com/heathj/pageobject/collection"
)

// Indexed is a handle that can pick one of its matches.
type Indexed[H any] interface {
	collection.Handle[H]
	Nth(i int) H
}

type Table[H Indexed[H]] struct {
	collection.Collection[H]
}

func NewTable[H Indexed[H]](root H) Table[H] {
	return Table[H]{collection.New(root)}
}

func (t Table[H]) Header() Row[H] {
	return collection.NestSelector(t.Collection, NewRow[H], "thead tr")
}

// Rows matches every body row.
func (t Table[H]) Rows() H {
	return t.El("tbody tr")
}

// Row returns the i-th body row. Negative i counts from the end.
func (t Table[H]) Row(i int) Row[H] {
	return collection.NestAt(t.Collection, NewRow[H], t.Rows().Nth(i))
}

// RowsIn returns a Row rooted at selector, for tables whose rows are not
// under tbody or that need filtering, e.g. "tr.unread".
func (t Table[H]) RowsIn(selector string) Row[H] {
	return collection.NestSelector(t.Collection, NewRow[H], selector)
}

type Row[H Indexed[H]] struct {
	collection.Collection[H]
}

func NewRow[H Indexed[H]](root H) Row[H] {
	return Row[H]{collection.New(root)}
}

func (r Row[H]) Cells() H {
	return r.El("td, th")
}

func (r Row[H]) Cell(i int) H {
	return r.Cells().Nth(i)
}

type Form[H Indexed[H]] struct {
	collection.Collection[H]
}

func NewForm[H Indexed[H]](root H) Form[H] {
	return Form[H]{collection.New(root)}
}

// Field matches controls by their name attribute.
func (f Form[H]) Field(name string) H {
	return f.El(`[name=` + cssString(name) + `]`)
}

func (f Form[H]) Submit() H {
	return f.El(`button[type="submit"], input[type="submit"]`)
}

// Section narrows the form to a fieldset or other grouping.
func (f Form[H]) Section(selector string) Form[H] {
	return collection.NestSelector(f.Collection, NewForm[H], selector)
}

// cssString quotes s as a CSS string. Control characters become hex escapes
// followed by a space, and NUL becomes U+FFFD.
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
