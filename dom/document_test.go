package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type treeTest struct {
	in       string
	expected string
}

var treeTests = []treeTest{
	{
		in: "<!DOCTYPE html><p>Hello",
		expected: `#document
| <!DOCTYPE html>
| <html>
|   <head>
|   <body>
|     <p>
|       "Hello"`,
	},
	{
		in: `<div id="a" class="x y"><!--c--><span>t</span></div>`,
		expected: `#document
| <html>
|   <head>
|   <body>
|     <div>
|       class="x y"
|       id="a"
|       <!-- c -->
|       <span>
|         "t"`,
	},
	{
		in: `<svg viewBox="0 0 1 1"><circle r="1"/></svg>`,
		expected: `#document
| <html>
|   <head>
|   <body>
|     <svg svg>
|       viewBox="0 0 1 1"
|       <svg circle>
|         r="1"`,
	},
}

func TestTreeDump(t *testing.T) {
	for _, tt := range treeTests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseString(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, d.String()); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubtreeDump(t *testing.T) {
	d, err := ParseString(`<ul><li>a</li></ul>`)
	require.NoError(t, err)
	ul := d.GetElementsByTagName("ul")[0]
	want := `| <ul>
|   <li>
|     "a"`
	assert.Equal(t, want, ul.String())
}

func TestTreeLinks(t *testing.T) {
	d, err := ParseString(`<ul><li>a</li><li>b</li><li>c</li></ul>`)
	require.NoError(t, err)

	ul := d.GetElementsByTagName("ul")[0]
	require.Len(t, ul.ChildNodes, 3)
	assert.Same(t, ul.ChildNodes[0], ul.FirstChild)
	assert.Same(t, ul.ChildNodes[2], ul.LastChild)
	assert.Same(t, ul.ChildNodes[1], ul.FirstChild.NextSibling)
	assert.Same(t, ul.ChildNodes[1], ul.LastChild.PreviousSibling)
	assert.Nil(t, ul.FirstChild.PreviousSibling)
	assert.Same(t, ul, ul.FirstChild.ParentElement())
	assert.Same(t, d, ul.OwnerDocument)

	assert.True(t, d.Contains(ul.LastChild))
	assert.True(t, ul.Contains(ul))
	assert.False(t, ul.FirstChild.Contains(ul))
	assert.Equal(t, "abc", ul.TextContent())
	assert.Equal(t, 1, ul.ChildNodes.Contains(ul.ChildNodes[1]))
	assert.Equal(t, -1, ul.ChildNodes.Contains(ul))
}

func TestParseFragment(t *testing.T) {
	d, err := ParseFragment(strings.NewReader("<td>1</td><td>2</td>"), "tr")
	require.NoError(t, err)
	cells := d.GetElementsByTagName("td")
	require.Len(t, cells, 2)
	assert.Equal(t, "2", cells[1].TextContent())
	assert.Nil(t, cells[0].ParentElement())
}

func TestTitle(t *testing.T) {
	d, err := ParseString("<title> Inbox </title><p>x")
	require.NoError(t, err)
	assert.Equal(t, "Inbox", d.Title())

	d, err = ParseString("<p>x")
	require.NoError(t, err)
	assert.Empty(t, d.Title())
}
