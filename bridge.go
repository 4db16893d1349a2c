package main

import (
	"log"
	"math"
)

// DefaultBridgeMaxDist closes thinning gaps of up to two pixels, diagonals included
const DefaultBridgeMaxDist = 2.5

// Above this many endpoints the bridger buckets them in an R-tree
// instead of testing every pair.
const bridgeIndexThreshold = 64

// Distance returns the Euclidean distance between two pixels
func (n Node) Distance(other Node) float64 {
	dr := float64(n.Row - other.Row)
	dc := float64(n.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// BridgeEndpoints mutates g, joining every unordered pair of degree-1 nodes
// within maxDist that are not already adjacent. Endpoints are taken from
// the graph before any bridge is added. Pairs are connected in (i, j)
// endpoint-index order regardless of whether the spatial index is used.
// Returns the number of bridges added.
func BridgeEndpoints(g *PixelGraph, maxDist float64) int {
	if maxDist <= 0 {
		return 0
	}

	endpoints := g.Endpoints()
	n := len(endpoints)
	if n < 2 {
		return 0
	}

	added := 0
	connect := func(i, j int) {
		a, b := endpoints[i], endpoints[j]
		if a.Distance(b) <= maxDist && !g.HasEdge(a, b) {
			g.AddEdge(a, b)
			added++
		}
	}

	if n <= bridgeIndexThreshold {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				connect(i, j)
			}
		}
	} else {
		index := NewEndpointIndex(endpoints)
		for i := 0; i < n; i++ {
			for _, j := range index.QueryNear(endpoints[i], maxDist) {
				if j > i {
					connect(i, j)
				}
			}
		}
	}

	if added > 0 {
		log.Printf("   🔗 Bridged %d endpoint gaps (%d endpoints, max dist %.2f)\n", added, n, maxDist)
	}

	return added
}
