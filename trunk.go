package main

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// farthestFrom runs a BFS from s over s's component and returns a shortest
// path from s to the farthest node. Among nodes at maximum distance the
// first one discovered wins.
func (g *PixelGraph) farthestFrom(s Node) Path {
	dist := map[Node]int{s: 0}
	parent := map[Node]Node{}
	queue := []Node{s}

	far, farDist := s, 0
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if dist[u] > farDist {
			far, farDist = u, dist[u]
		}
		for _, v := range g.Neighbors(u) {
			if _, seen := dist[v]; seen {
				continue
			}
			dist[v] = dist[u] + 1
			parent[v] = u
			queue = append(queue, v)
		}
	}

	path := make(Path, farDist+1)
	n := far
	for i := farDist; i >= 0; i-- {
		path[i] = n
		n = parent[n]
	}
	return path
}

// FindTrunk approximates the graph's diameter and returns it as the trunk.
//
// Every endpoint is swept with a BFS and the longest resulting shortest path
// wins, the lowest endpoint index breaking ties. Sweeps run in parallel but
// land in index-addressed slots, so the result does not depend on scheduling.
// Without endpoints (a pure cycle, a single pixel) a single sweep from the
// first node is used, which may pick a poor trunk on heavily cyclic graphs.
// An empty graph yields an empty path.
func FindTrunk(g *PixelGraph) Path {
	if g == nil || g.NumNodes() == 0 {
		return Path{}
	}

	endpoints := g.Endpoints()
	if len(endpoints) == 0 {
		return g.farthestFrom(g.Nodes()[0])
	}

	paths := make([]Path, len(endpoints))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range endpoints {
		eg.Go(func() error {
			paths[i] = g.farthestFrom(s)
			return nil
		})
	}
	_ = eg.Wait() // sweeps never fail

	best := Path{}
	for _, p := range paths {
		if len(p) > len(best) {
			best = p
		}
	}
	return best
}
