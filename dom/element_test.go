package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySelector(t *testing.T) {
	d := mustParse(t, inbox)

	rows, err := d.QuerySelectorAll("tbody > tr")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	first, err := d.QuerySelector("td")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "ann", first.TextContent())

	none, err := d.QuerySelector("video")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = d.QuerySelectorAll("div[")
	assert.Error(t, err)
}

func TestMatchesAndClosest(t *testing.T) {
	d := mustParse(t, inbox)
	cell := d.GetElementsByTagName("td")[3]

	ok, err := cell.Matches("tr:not(.unread) td")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cell.FirstChild.Matches("td")
	require.NoError(t, err)
	assert.False(t, ok, "text nodes never match")

	row, err := cell.Closest("tr")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "bobLunch?", row.TextContent())

	self, err := cell.Closest("td")
	require.NoError(t, err)
	assert.Same(t, cell, self)

	missing, err := cell.Closest("ul")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetElementsByClassName(t *testing.T) {
	d := mustParse(t, `<p class="a b">1</p><p class="b">2</p><p class="a">3</p>`)

	tests := []struct {
		names []string
		want  int
	}{
		{[]string{"a"}, 2},
		{[]string{"b"}, 2},
		{[]string{"a", "b"}, 1},
		{[]string{"c"}, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Len(t, d.GetElementsByClassName(tt.names...), tt.want, "%v", tt.names)
	}
}

func TestAttributes(t *testing.T) {
	d := mustParse(t, `<input Name="q" DATA-x="1" class=" a  b ">`)
	in := d.GetElementsByTagName("input")[0]

	assert.Equal(t, "q", in.GetAttribute("NAME"))
	assert.True(t, in.HasAttribute("data-x"))
	assert.False(t, in.HasAttribute("value"))
	assert.Equal(t, DOMTokenList{"a", "b"}, in.ClassList)
	assert.Equal(t, "a b", in.ClassList.Value())
	assert.Equal(t, 3, in.Attributes.Length())
	assert.Empty(t, in.ID())

	body := d.GetElementsByTagName("body")[0]
	assert.Empty(t, body.GetAttribute("id"))
}

func TestOuterHTML(t *testing.T) {
	d := mustParse(t, `<ul><li class="x">a &amp; b</li></ul>`)
	li := d.GetElementsByTagName("li")[0]
	out, err := li.OuterHTML()
	require.NoError(t, err)
	assert.Equal(t, `<li class="x">a &amp; b</li>`, out)
}
