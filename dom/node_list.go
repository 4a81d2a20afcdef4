package dom

import "sort"

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

// Contains returns the index of n in the list, or -1.
func (h NodeList) Contains(n *Node) int {
	for i := range h {
		if n == h[i] {
			return i
		}
	}
	return -1
}

// Item returns the node at index i, or nil if out of range.
func (h NodeList) Item(i int) *Node {
	if i < 0 || i >= len(h) {
		return nil
	}
	return h[i]
}

// Nth picks a single node. Negative indexes count from the end.
func (h NodeList) Nth(i int) NodeList {
	if i < 0 {
		i += len(h)
	}
	if n := h.Item(i); n != nil {
		return NodeList{n}
	}
	return nil
}

// union merges lists, dropping duplicates and restoring document order.
func union(lists ...NodeList) NodeList {
	seen := make(map[*Node]struct{})
	var out NodeList
	for _, l := range lists {
		for _, n := range l {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}
