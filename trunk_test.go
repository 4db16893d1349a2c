package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWalk(t *testing.T, g *PixelGraph, p Path) {
	t.Helper()
	for i := 1; i < len(p); i++ {
		assert.True(t, g.HasEdge(p[i-1], p[i]), "step %d: %v -> %v is not an edge", i, p[i-1], p[i])
	}
}

func TestFindTrunk_SimplePath(t *testing.T) {
	for _, k := range []int{2, 5, 33} {
		g, err := BuildPixelGraph(lineMask(k), Conn8)
		require.NoError(t, err)

		trunk := FindTrunk(g)
		require.Len(t, trunk, k)
		assert.Equal(t, Node{1, 1}, trunk[0])
		assert.Equal(t, Node{1, k}, trunk[k-1])
		assertWalk(t, g, trunk)
	}
}

func TestFindTrunk_EmptyGraph(t *testing.T) {
	assert.Empty(t, FindTrunk(NewPixelGraph()))
	assert.Empty(t, FindTrunk(nil))
}

func TestFindTrunk_SingleNode(t *testing.T) {
	g := NewPixelGraph()
	g.AddNode(Node{4, 4})
	assert.Equal(t, Path{{4, 4}}, FindTrunk(g))
}

func TestFindTrunk_CycleFallback(t *testing.T) {
	m := maskFromPattern(t,
		"###",
		"#.#",
		"###",
	)
	g, err := BuildPixelGraph(m, Conn4)
	require.NoError(t, err)
	require.Empty(t, g.Endpoints())

	trunk := FindTrunk(g)
	require.Len(t, trunk, 5)
	assert.Equal(t, Node{0, 0}, trunk[0])
	assert.Equal(t, Node{2, 2}, trunk[4])
	assertWalk(t, g, trunk)
}

func TestFindTrunk_PicksLongestArm(t *testing.T) {
	// Y-ish shape: long horizontal run with a short spur
	m := maskFromPattern(t,
		"...#..........",
		"...#..........",
		"##############",
	)
	g, err := BuildPixelGraph(m, Conn4)
	require.NoError(t, err)

	trunk := FindTrunk(g)
	require.Len(t, trunk, 14)
	assert.Equal(t, Node{2, 0}, trunk[0])
	assert.Equal(t, Node{2, 13}, trunk[13])
}

func TestFindTrunk_DisconnectedComponents(t *testing.T) {
	m := maskFromPattern(t,
		"#####.......",
		"............",
		"...#########",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)

	trunk := FindTrunk(g)
	require.Len(t, trunk, 9)
	assert.Equal(t, 2, trunk[0].Row)
	assertWalk(t, g, trunk)
}

func TestFindTrunk_Deterministic(t *testing.T) {
	m := maskFromPattern(t,
		"#.....#.....#",
		".#....#....#.",
		"..#...#...#..",
		"...#..#..#...",
		"....#.#.#....",
		".....###.....",
		"......#......",
		"......#......",
		"......#......",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)

	first := FindTrunk(g)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FindTrunk(g))
	}
}
