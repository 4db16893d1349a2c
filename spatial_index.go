package main

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// endpointHalfSize is half the side of the box stored for each endpoint pixel
const endpointHalfSize = 0.25

// EndpointEntry wraps an endpoint for R-tree storage
type EndpointEntry struct {
	Index int // position in the endpoint list
	Node  Node
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *EndpointEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// EndpointIndex buckets endpoint pixels so close pairs can be found
// without comparing every pair
type EndpointIndex struct {
	tree *rtreego.Rtree
}

// NewEndpointIndex creates a spatial index over the given endpoints
func NewEndpointIndex(endpoints []Node) *EndpointIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for i, n := range endpoints {
		bbox, err := squareAround(n, endpointHalfSize)
		if err != nil {
			continue
		}
		tree.Insert(&EndpointEntry{Index: i, Node: n, BBox: bbox})
	}

	return &EndpointIndex{tree: tree}
}

// QueryNear returns the indices, ascending, of endpoints whose box intersects
// the square of half-side radius around center. This is a superset of the
// endpoints within Euclidean distance radius; callers apply the exact test.
func (ei *EndpointIndex) QueryNear(center Node, radius float64) []int {
	bbox, err := squareAround(center, radius)
	if err != nil {
		return []int{}
	}

	results := ei.tree.SearchIntersect(bbox)
	indices := make([]int, 0, len(results))
	for _, item := range results {
		indices = append(indices, item.(*EndpointEntry).Index)
	}
	sort.Ints(indices)

	return indices
}

// Size returns the number of indexed endpoints
func (ei *EndpointIndex) Size() int {
	return ei.tree.Size()
}

// squareAround builds an axis-aligned square centred on a pixel (x = col, y = row)
func squareAround(n Node, half float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{float64(n.Col) - half, float64(n.Row) - half},
		[]float64{2 * half, 2 * half},
	)
}
