package chrome

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/stretchr/testify/assert"
)

func TestLocatorString(t *testing.T) {
	page := Page()
	rows := page.Locate("table").Locate("tbody tr")

	assert.Equal(t, "document", page.String())
	assert.Equal(t, "table >> tbody tr", rows.String())
	assert.Equal(t, "table >> tbody tr >> nth=0", rows.First().String())
	assert.Equal(t, "table >> tbody tr >> nth=-1 >> td", rows.Last().Locate("td").String())
	assert.Equal(t, "table >> tbody tr", rows.String(), "deriving must not modify the parent")
}

func TestNodesRejectsUnscopedLocators(t *testing.T) {
	tests := []struct {
		l   *Locator
		err string
	}{
		{Page(), "has no steps to evaluate"},
		{Page().First(), "index step on document"},
		{Page().Last().Locate("td"), "index step on document"},
	}
	for _, tt := range tests {
		t.Run(tt.l.String(), func(t *testing.T) {
			_, err := tt.l.Nodes(context.Background())
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestPick(t *testing.T) {
	nodes := []*cdp.Node{{NodeID: 1}, {NodeID: 2}, {NodeID: 3}}

	tests := []struct {
		i    int
		want []cdp.NodeID
	}{
		{0, []cdp.NodeID{1}},
		{2, []cdp.NodeID{3}},
		{-1, []cdp.NodeID{3}},
		{-3, []cdp.NodeID{1}},
		{3, nil},
		{-4, nil},
	}
	for _, tt := range tests {
		var got []cdp.NodeID
		for _, n := range pick(nodes, tt.i) {
			got = append(got, n.NodeID)
		}
		assert.Equal(t, tt.want, got, "pick(%d)", tt.i)
	}
}

func TestAllocatorOptions(t *testing.T) {
	o := DefaultOptions()
	assert.True(t, o.Headless)
	assert.Equal(t, 30*time.Second, o.Timeout)

	base := len(o.allocatorOptions())
	o.ExecPath = "/usr/bin/chromium"
	o.Flags = map[string]interface{}{"window-size": "800,600"}
	assert.Len(t, o.allocatorOptions(), base+2)
}
