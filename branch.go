package main

// DefaultMinBranchLen drops spurs shorter than this many pixels
const DefaultMinBranchLen = 15

// branchFrame is one pending step of the branch walk
type branchFrame struct {
	node   Node
	parent Node
	path   Path
}

// ExtractBranches decomposes the off-trunk part of g into side branches.
//
// For every trunk node v and every off-trunk neighbour nb whose edge is still
// unvisited, a depth-first walk from nb collects every maximal path to a leaf.
// Each path is prefixed with v, its attachment point, and kept when it has at
// least minLen nodes. Walks never re-enter the trunk and the visited-edge set
// is shared across all attachment points, so no edge feeds two branches and
// cycles terminate.
func ExtractBranches(g *PixelGraph, trunk Path, minLen int) []Path {
	branches := make([]Path, 0)
	if g == nil || len(trunk) == 0 {
		return branches
	}

	trunkSet := make(map[Node]struct{}, len(trunk))
	for _, n := range trunk {
		trunkSet[n] = struct{}{}
	}
	visited := make(map[edgeKey]struct{})

	for _, v := range trunk {
		for _, nb := range g.Neighbors(v) {
			if _, onTrunk := trunkSet[nb]; onTrunk {
				continue
			}
			e0 := makeEdgeKey(v, nb)
			if _, seen := visited[e0]; seen {
				continue
			}
			visited[e0] = struct{}{}

			for _, p := range branchPathsFrom(g, nb, v, trunkSet, visited) {
				full := make(Path, 0, len(p)+1)
				full = append(full, v)
				full = append(full, p...)
				if len(full) >= minLen {
					branches = append(branches, full)
				}
			}
		}
	}

	return branches
}

// branchPathsFrom walks from root with an explicit LIFO stack and returns
// every root-to-leaf path. A leaf is a node with no unvisited, off-trunk,
// non-parent neighbour. Edges are marked in visited as they are taken.
func branchPathsFrom(g *PixelGraph, root, attach Node, trunkSet map[Node]struct{}, visited map[edgeKey]struct{}) []Path {
	paths := make([]Path, 0)
	stack := []branchFrame{{node: root, parent: attach, path: Path{root}}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := make([]Node, 0, g.Degree(top.node))
		for _, nb := range g.Neighbors(top.node) {
			if nb == top.parent {
				continue
			}
			if _, onTrunk := trunkSet[nb]; onTrunk {
				continue
			}
			if _, seen := visited[makeEdgeKey(top.node, nb)]; seen {
				continue
			}
			next = append(next, nb)
		}

		if len(next) == 0 {
			paths = append(paths, top.path)
			continue
		}

		for _, nb := range next {
			visited[makeEdgeKey(top.node, nb)] = struct{}{}

			extended := make(Path, len(top.path)+1)
			copy(extended, top.path)
			extended[len(top.path)] = nb
			stack = append(stack, branchFrame{node: nb, parent: top.node, path: extended})
		}
	}

	return paths
}
