package state

import "SketchBoard/internal/geom"

// ElementsInBox returns the ids of every element whose bounds overlap the
// box spanned by a and b, in z-order.
func ElementsInBox(elements []Element, a, b geom.Point) []string {
	box := geom.BoundsFromCorners(a, b)
	ids := make([]string, 0)
	for _, e := range elements {
		if ElementIntersectsBox(e, box.MinX, box.MinY, box.MaxX, box.MaxY) {
			ids = append(ids, e.Common().ID)
		}
	}
	return ids
}

// UnionIDs appends the ids of add that are not already in base.
func UnionIDs(base, add []string) []string {
	seen := make(map[string]bool, len(base)+len(add))
	out := make([]string, 0, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// toggleID adds id to ids, or removes it if present.
func toggleID(ids []string, id string) []string {
	for i, have := range ids {
		if have == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

// pruneIDs drops ids that no longer name an element.
func pruneIDs(ids []string, elements []Element) []string {
	if len(ids) == 0 {
		return ids
	}
	live := make(map[string]bool, len(elements))
	for _, e := range elements {
		live[e.Common().ID] = true
	}
	out := ids[:0:0]
	for _, id := range ids {
		if live[id] {
			out = append(out, id)
		}
	}
	return out
}
