package main

import (
	"sort"

	"github.com/paulmach/orb"
)

// AgentBucket holds the routes assigned to one agent and their total length
type AgentBucket struct {
	Routes []orb.LineString `json:"routes"`
	Length float64          `json:"length"`
}

// SplitRoutesForAgents distributes routes over min(n, len(routes)) agents
// using the Longest Processing Time heuristic: routes are taken longest
// first (stable on input order) and each goes to the bucket with the
// smallest running total, lowest index on ties. No routes or n <= 0
// yields no buckets.
func SplitRoutesForAgents(routes []orb.LineString, n int, metric LengthMetric) []AgentBucket {
	if len(routes) == 0 || n <= 0 {
		return []AgentBucket{}
	}

	m := n
	if len(routes) < m {
		m = len(routes)
	}

	lengths := make([]float64, len(routes))
	order := make([]int, len(routes))
	for i, r := range routes {
		lengths[i] = metric.Length(r)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lengths[order[a]] > lengths[order[b]]
	})

	buckets := make([]AgentBucket, m)
	for _, idx := range order {
		k := 0
		for j := 1; j < m; j++ {
			if buckets[j].Length < buckets[k].Length {
				k = j
			}
		}
		buckets[k].Routes = append(buckets[k].Routes, routes[idx])
		buckets[k].Length += lengths[idx]
	}

	return buckets
}

// JoinRoutesForAgent concatenates routes, in order, into one polyline.
// Routes with fewer than 2 points are skipped. When a route does not start
// where the previous one ended, its first point is appended as a connecting
// point; when it does, the shared point is not repeated.
func JoinRoutesForAgent(routes []orb.LineString) orb.LineString {
	coords := orb.LineString{}
	for _, seg := range routes {
		if len(seg) < 2 {
			continue
		}
		if len(coords) == 0 {
			coords = append(coords, seg...)
			continue
		}
		if coords[len(coords)-1] != seg[0] {
			coords = append(coords, seg[0])
		}
		coords = append(coords, seg[1:]...)
	}
	return coords
}
