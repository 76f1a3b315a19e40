package quadtree

// Quadrant identifies one of the four child slots of a quadtree node.
// The numeric values double as indices into a node's child array.
type Quadrant int

const (
	// NW is the north-west (top-left) quadrant.
	NW Quadrant = iota
	// NE is the north-east (top-right) quadrant.
	NE
	// SW is the south-west (bottom-left) quadrant.
	SW
	// SE is the south-east (bottom-right) quadrant.
	SE
)

// quadrantNames maps quadrants to their canonical lowercase names,
// used in serialized trees and node path IDs.
var quadrantNames = [4]string{"nw", "ne", "sw", "se"}

// String returns the lowercase name of the quadrant ("nw", "ne", "sw", "se").
func (q Quadrant) String() string {
	if q < NW || q > SE {
		return "invalid"
	}
	return quadrantNames[q]
}

// ParseQuadrant converts a lowercase quadrant name back to its Quadrant value.
// The second return value is false for unknown names.
func ParseQuadrant(s string) (Quadrant, bool) {
	for i, name := range quadrantNames {
		if s == name {
			return Quadrant(i), true
		}
	}
	return 0, false
}

// Quadrants returns the four quadrants in canonical order: NW, NE, SW, SE.
// This order is part of the layout contract - it decides which sibling is
// "earlier" during coordinate assignment and must not change.
func Quadrants() [4]Quadrant {
	return [4]Quadrant{NW, NE, SW, SE}
}
