package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maskFromPattern builds a mask from rows of text; '#' is foreground
func maskFromPattern(t *testing.T, rows ...string) *Mask {
	t.Helper()
	grid := make([][]int, len(rows))
	for r, row := range rows {
		grid[r] = make([]int, len(row))
		for c, ch := range row {
			if ch == '#' {
				grid[r][c] = 1
			}
		}
	}
	m, err := MaskFromRows(grid)
	require.NoError(t, err)
	return m
}

// lineMask draws a horizontal line of k pixels in a 3-row mask
func lineMask(k int) *Mask {
	m := NewMask(3, k+2)
	for c := 1; c <= k; c++ {
		m.SetCell(1, c, true)
	}
	return m
}

func TestBuildPixelGraph_CornersAreIsolated(t *testing.T) {
	m := maskFromPattern(t,
		"#...#",
		".....",
		".....",
		"#...#",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 0, g.NumEdges())
}

func TestBuildPixelGraph_StraightLine(t *testing.T) {
	for _, k := range []int{1, 2, 7, 40} {
		for _, conn := range []Connectivity{Conn4, Conn8} {
			g, err := BuildPixelGraph(lineMask(k), conn)
			require.NoError(t, err)

			assert.Equal(t, k, g.NumNodes(), "k=%d conn=%d", k, conn)
			assert.Equal(t, k-1, g.NumEdges(), "k=%d conn=%d", k, conn)
			for i, n := range g.Nodes() {
				assert.Equal(t, Node{Row: 1, Col: i + 1}, n)
				if i > 0 {
					assert.True(t, g.HasEdge(g.Nodes()[i-1], n))
				}
			}
			if k > 1 {
				assert.Len(t, g.Endpoints(), 2)
			}
		}
	}
}

func TestBuildPixelGraph_Connectivity(t *testing.T) {
	block := maskFromPattern(t,
		"##",
		"##",
	)

	g4, err := BuildPixelGraph(block, Conn4)
	require.NoError(t, err)
	assert.Equal(t, 4, g4.NumEdges())
	assert.False(t, g4.HasEdge(Node{0, 0}, Node{1, 1}))

	g8, err := BuildPixelGraph(block, Conn8)
	require.NoError(t, err)
	assert.Equal(t, 6, g8.NumEdges())
	assert.True(t, g8.HasEdge(Node{0, 0}, Node{1, 1}))
	assert.True(t, g8.HasEdge(Node{0, 1}, Node{1, 0}))
}

func TestBuildPixelGraph_EmptyMask(t *testing.T) {
	g, err := BuildPixelGraph(NewMask(10, 10), Conn8)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
	assert.Empty(t, g.Endpoints())

	g, err = BuildPixelGraph(nil, Conn4)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
}

func TestBuildPixelGraph_InvalidConnectivity(t *testing.T) {
	for _, conn := range []Connectivity{0, 6, -4} {
		_, err := BuildPixelGraph(lineMask(3), conn)
		assert.True(t, errors.Is(err, ErrInvalidConnectivity), "conn=%d err=%v", conn, err)
	}
}

func TestPixelGraph_AddEdge(t *testing.T) {
	g := NewPixelGraph()
	a, b := Node{0, 0}, Node{0, 1}

	assert.False(t, g.AddEdge(a, a), "self-loop")
	assert.True(t, g.AddEdge(a, b))
	assert.False(t, g.AddEdge(b, a), "duplicate")

	assert.Equal(t, 2, g.NumNodes())
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, []Node{b}, g.Neighbors(a))
	assert.Equal(t, []Node{a}, g.Neighbors(b))
}

func TestPixelGraph_CloneIsIndependent(t *testing.T) {
	g, err := BuildPixelGraph(lineMask(4), Conn8)
	require.NoError(t, err)

	clone := g.Clone()
	clone.AddEdge(Node{1, 1}, Node{1, 4})
	clone.AddNode(Node{0, 0})

	assert.Equal(t, 3, g.NumEdges())
	assert.Equal(t, 4, g.NumNodes())
	assert.False(t, g.HasEdge(Node{1, 1}, Node{1, 4}))
	assert.Equal(t, 4, clone.NumEdges())
	assert.Equal(t, 5, clone.NumNodes())
}

func TestMakeEdgeKey_Undirected(t *testing.T) {
	a, b := Node{3, 1}, Node{2, 5}
	assert.Equal(t, makeEdgeKey(a, b), makeEdgeKey(b, a))
	assert.Equal(t, b, makeEdgeKey(a, b).A)
}
