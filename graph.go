package main

import (
	"errors"
	"fmt"
)

// Connectivity selects which neighbouring pixels are considered adjacent
type Connectivity int

const (
	Conn4 Connectivity = 4 // N, S, W, E
	Conn8 Connectivity = 8 // N, S, W, E plus diagonals
)

// ErrInvalidConnectivity is returned for any connectivity other than 4 or 8
var ErrInvalidConnectivity = errors.New("connectivity must be 4 or 8")

// Neighbour offsets as (dRow, dCol). Orthogonal first, diagonals after.
var (
	offsets4 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	offsets8 = [][2]int{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	}
)

// Offsets returns the neighbour offsets for this connectivity
func (c Connectivity) Offsets() ([][2]int, error) {
	switch c {
	case Conn4:
		return offsets4, nil
	case Conn8:
		return offsets8, nil
	}
	return nil, fmt.Errorf("%w: got %d", ErrInvalidConnectivity, int(c))
}

// Node is a foreground pixel. Its coordinate is its identity.
type Node struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Less orders nodes row-major
func (n Node) Less(other Node) bool {
	if n.Row != other.Row {
		return n.Row < other.Row
	}
	return n.Col < other.Col
}

// Path is an ordered walk through the pixel graph
type Path []Node

// edgeKey is an undirected edge with its endpoints in row-major order
type edgeKey struct {
	A, B Node
}

func makeEdgeKey(a, b Node) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{A: a, B: b}
}

// PixelGraph is an undirected, unweighted graph over pixel coordinates.
// Nodes and neighbour lists keep insertion order so every traversal is
// deterministic for a given mask.
type PixelGraph struct {
	nodes    []Node
	adj      map[Node][]Node
	numEdges int
}

// NewPixelGraph creates an empty graph
func NewPixelGraph() *PixelGraph {
	return &PixelGraph{adj: make(map[Node][]Node)}
}

// AddNode adds n if it is not already present
func (g *PixelGraph) AddNode(n Node) {
	if _, ok := g.adj[n]; ok {
		return
	}
	g.adj[n] = nil
	g.nodes = append(g.nodes, n)
}

// HasNode reports whether n is in the graph
func (g *PixelGraph) HasNode(n Node) bool {
	_, ok := g.adj[n]
	return ok
}

// AddEdge connects a and b, adding either node if missing.
// Self-loops and duplicate edges are ignored. Returns true if an edge was added.
func (g *PixelGraph) AddEdge(a, b Node) bool {
	if a == b {
		return false
	}
	g.AddNode(a)
	g.AddNode(b)
	if g.HasEdge(a, b) {
		return false
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	g.numEdges++
	return true
}

// HasEdge reports whether a and b are adjacent
func (g *PixelGraph) HasEdge(a, b Node) bool {
	// Pixel degrees are tiny, a scan beats a nested map here
	for _, nb := range g.adj[a] {
		if nb == b {
			return true
		}
	}
	return false
}

// Neighbors returns the neighbours of n in insertion order.
// The returned slice must not be modified.
func (g *PixelGraph) Neighbors(n Node) []Node {
	return g.adj[n]
}

// Degree returns the number of neighbours of n
func (g *PixelGraph) Degree(n Node) int {
	return len(g.adj[n])
}

// Nodes returns all nodes in insertion order. The returned slice must not be modified.
func (g *PixelGraph) Nodes() []Node {
	return g.nodes
}

func (g *PixelGraph) NumNodes() int { return len(g.nodes) }
func (g *PixelGraph) NumEdges() int { return g.numEdges }

// Endpoints returns all degree-1 nodes in node order
func (g *PixelGraph) Endpoints() []Node {
	endpoints := make([]Node, 0)
	for _, n := range g.nodes {
		if len(g.adj[n]) == 1 {
			endpoints = append(endpoints, n)
		}
	}
	return endpoints
}

// Clone returns a deep copy so the original survives mutation by the bridger
func (g *PixelGraph) Clone() *PixelGraph {
	clone := &PixelGraph{
		nodes:    make([]Node, len(g.nodes)),
		adj:      make(map[Node][]Node, len(g.adj)),
		numEdges: g.numEdges,
	}
	copy(clone.nodes, g.nodes)
	for n, nbs := range g.adj {
		if nbs == nil {
			clone.adj[n] = nil
			continue
		}
		clone.adj[n] = append(make([]Node, 0, len(nbs)), nbs...)
	}
	return clone
}

// BuildPixelGraph converts a binary skeleton into a pixel adjacency graph.
// Every foreground cell becomes a node; neighbouring foreground cells under
// the given connectivity are joined by an edge. An empty mask yields an empty graph.
func BuildPixelGraph(mask *Mask, conn Connectivity) (*PixelGraph, error) {
	dirs, err := conn.Offsets()
	if err != nil {
		return nil, err
	}

	g := NewPixelGraph()
	if mask == nil {
		return g, nil
	}

	foreground := make([]Node, 0)
	for r := 0; r < mask.Height; r++ {
		for c := 0; c < mask.Width; c++ {
			if mask.Set(r, c) {
				n := Node{Row: r, Col: c}
				g.AddNode(n)
				foreground = append(foreground, n)
			}
		}
	}

	for _, n := range foreground {
		for _, d := range dirs {
			nr, nc := n.Row+d[0], n.Col+d[1]
			if mask.Set(nr, nc) {
				g.AddEdge(n, Node{Row: nr, Col: nc})
			}
		}
	}

	return g, nil
}
