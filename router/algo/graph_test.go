package algo_test

import (
	"testing"

	"git.fiblab.net/sim/transit/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEdge struct {
	from, to int
	w        float64
	attr     int
}

func (e testEdge) From() int       { return e.from }
func (e testEdge) To() int         { return e.to }
func (e testEdge) Weight() float64 { return e.w }

type intEdge struct {
	from, to int
	w        int64
}

func (e intEdge) From() int     { return e.from }
func (e intEdge) To() int       { return e.to }
func (e intEdge) Weight() int64 { return e.w }

func TestSearchGraph(t *testing.T) {
	g := algo.NewSearchGraph[float64, testEdge](5)

	// 初始化边
	e12, err := g.AddEdge(testEdge{0, 1, 1, 12})
	require.NoError(t, err)
	e23, _ := g.AddEdge(testEdge{1, 2, 1, 23})
	e34, _ := g.AddEdge(testEdge{2, 3, 1, 34})
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, []int{e12}, g.IncidentEdges(0))

	// 计算最短路
	path, ok := g.ShortestPath(0, 3)
	require.True(t, ok)
	assert.Equal(t, []int{e12, e23, e34}, path.Edges)
	assert.Equal(t, 3.0, path.Weight)
	assert.Equal(t, 23, g.Edge(path.Edges[1]).attr)

	// 起点等于终点
	path, ok = g.ShortestPath(2, 2)
	require.True(t, ok)
	assert.Empty(t, path.Edges)
	assert.Equal(t, 0.0, path.Weight)

	// 不可达的点
	_, ok = g.ShortestPath(0, 4)
	assert.False(t, ok)
	// 反方向不可达
	_, ok = g.ShortestPath(3, 0)
	assert.False(t, ok)
	// 超出范围
	_, ok = g.ShortestPath(0, 7)
	assert.False(t, ok)
}

func TestSearchGraphShorterDetour(t *testing.T) {
	g := algo.NewSearchGraph[float64, testEdge](3)

	g.AddEdge(testEdge{0, 1, 10, 12})
	e13, _ := g.AddEdge(testEdge{0, 2, 2, 13})
	e32, _ := g.AddEdge(testEdge{2, 1, 1, 32})

	path, ok := g.ShortestPath(0, 1)
	require.True(t, ok)
	assert.Equal(t, []int{e13, e32}, path.Edges)
	assert.Equal(t, 3.0, path.Weight)
}

func TestSearchGraphDecreaseKey(t *testing.T) {
	// 0->1 先以较大代价入堆，之后经2被更新
	g := algo.NewSearchGraph[int64, intEdge](4)
	g.AddEdge(intEdge{0, 1, 9})
	g.AddEdge(intEdge{0, 2, 1})
	g.AddEdge(intEdge{2, 1, 1})
	g.AddEdge(intEdge{1, 3, 1})

	path, ok := g.ShortestPath(0, 3)
	require.True(t, ok)
	assert.Equal(t, int64(3), path.Weight)
	assert.Equal(t, []int{1, 2, 3}, path.Edges)
}

func TestSearchGraphDeterministicTie(t *testing.T) {
	build := func() *algo.SearchGraph[int64, intEdge] {
		g := algo.NewSearchGraph[int64, intEdge](4)
		g.AddEdge(intEdge{0, 1, 1})
		g.AddEdge(intEdge{0, 2, 1})
		g.AddEdge(intEdge{1, 3, 1})
		g.AddEdge(intEdge{2, 3, 1})
		return g
	}
	first, ok := build().ShortestPath(0, 3)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := build().ShortestPath(0, 3)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, int64(2), first.Weight)
}

func TestSearchGraphAddEdgeErrors(t *testing.T) {
	g := algo.NewSearchGraph[float64, testEdge](2)
	_, err := g.AddEdge(testEdge{0, 2, 1, 0})
	assert.ErrorIs(t, err, algo.ErrVertexOutOfRange)
	_, err = g.AddEdge(testEdge{-1, 1, 1, 0})
	assert.ErrorIs(t, err, algo.ErrVertexOutOfRange)
	_, err = g.AddEdge(testEdge{0, 1, -0.5, 0})
	assert.ErrorIs(t, err, algo.ErrNegativeWeight)
	assert.Equal(t, 0, g.EdgeCount())
}
