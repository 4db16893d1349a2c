package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairwiseBridge is the reference all-pairs rule the bridger must reproduce
func pairwiseBridge(g *PixelGraph, maxDist float64) int {
	endpoints := g.Endpoints()
	added := 0
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			a, b := endpoints[i], endpoints[j]
			if a.Distance(b) <= maxDist && !g.HasEdge(a, b) {
				g.AddEdge(a, b)
				added++
			}
		}
	}
	return added
}

func TestBridgeEndpoints_ClosesSmallGap(t *testing.T) {
	m := maskFromPattern(t,
		"#####.#####",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)
	require.Len(t, g.Endpoints(), 4)

	added := BridgeEndpoints(g, DefaultBridgeMaxDist)
	assert.Equal(t, 1, added)
	assert.True(t, g.HasEdge(Node{0, 4}, Node{0, 6}))
	assert.Len(t, g.Endpoints(), 2)

	trunk := FindTrunk(g)
	assert.Len(t, trunk, 10)
}

func TestBridgeEndpoints_LeavesWideGap(t *testing.T) {
	m := maskFromPattern(t,
		"####...####",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)

	assert.Equal(t, 0, BridgeEndpoints(g, DefaultBridgeMaxDist))
	assert.Equal(t, 6, g.NumEdges())
}

func TestBridgeEndpoints_DiagonalGap(t *testing.T) {
	// (1,3) and (3,4) are sqrt(5) ≈ 2.24 apart
	m := maskFromPattern(t,
		"........",
		"####....",
		"........",
		"....####",
	)
	g, err := BuildPixelGraph(m, Conn8)
	require.NoError(t, err)

	assert.Equal(t, 1, BridgeEndpoints(g, DefaultBridgeMaxDist))
	assert.True(t, g.HasEdge(Node{1, 3}, Node{3, 4}))
}

func TestBridgeEndpoints_NonPositiveDistance(t *testing.T) {
	g, err := BuildPixelGraph(maskFromPattern(t, "##.##"), Conn8)
	require.NoError(t, err)

	assert.Equal(t, 0, BridgeEndpoints(g, 0))
	assert.Equal(t, 0, BridgeEndpoints(g, -1))
	assert.Equal(t, 2, g.NumEdges())
}

func TestBridgeEndpoints_IndexMatchesPairwise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 5; trial++ {
		g := NewPixelGraph()
		// Scatter short 2-pixel dashes so there are plenty of endpoints
		for i := 0; i < 150; i++ {
			r, c := rng.Intn(60), rng.Intn(60)
			if rng.Intn(2) == 0 {
				g.AddEdge(Node{r, c}, Node{r, c + 1})
			} else {
				g.AddEdge(Node{r, c}, Node{r + 1, c})
			}
		}
		require.Greater(t, len(g.Endpoints()), bridgeIndexThreshold)

		want := g.Clone()
		wantAdded := pairwiseBridge(want, DefaultBridgeMaxDist)

		gotAdded := BridgeEndpoints(g, DefaultBridgeMaxDist)

		assert.Equal(t, wantAdded, gotAdded, "trial %d", trial)
		assert.Equal(t, want.NumEdges(), g.NumEdges(), "trial %d", trial)
		for _, n := range want.Nodes() {
			assert.Equal(t, want.Neighbors(n), g.Neighbors(n), "trial %d node %v", trial, n)
		}
	}
}

func TestEndpointIndex_QueryNear(t *testing.T) {
	endpoints := []Node{{0, 0}, {0, 2}, {2, 2}, {5, 5}, {0, 3}}
	index := NewEndpointIndex(endpoints)
	assert.Equal(t, 5, index.Size())

	got := index.QueryNear(Node{0, 0}, 2.5)
	assert.Equal(t, []int{0, 1, 2}, got)

	got = index.QueryNear(Node{5, 5}, 1)
	assert.Equal(t, []int{3}, got)
}
