package algo

import (
	"container/heap"
	"fmt"

	"github.com/samber/lo"
)

// 有向带权图，点为[0, vertexCount)的整数，边按加入顺序编号
// 建图完成后只读，可被多个goroutine并发查询
type SearchGraph[W Weight, E IEdge[W]] struct {
	edges []E
	// 邻接表，点 -> 出边id（按加入顺序）
	incidence [][]int
}

func NewSearchGraph[W Weight, E IEdge[W]](vertexCount int) *SearchGraph[W, E] {
	return &SearchGraph[W, E]{
		edges:     make([]E, 0),
		incidence: make([][]int, vertexCount),
	}
}

func (g *SearchGraph[W, E]) AddEdge(e E) (int, error) {
	if e.From() < 0 || e.From() >= len(g.incidence) || e.To() < 0 || e.To() >= len(g.incidence) {
		return NO_EDGE, fmt.Errorf("edge %d->%d with %d vertices: %w", e.From(), e.To(), len(g.incidence), ErrVertexOutOfRange)
	}
	var zero W
	if e.Weight() < zero {
		return NO_EDGE, fmt.Errorf("edge %d->%d weight %v: %w", e.From(), e.To(), e.Weight(), ErrNegativeWeight)
	}
	id := len(g.edges)
	g.edges = append(g.edges, e)
	g.incidence[e.From()] = append(g.incidence[e.From()], id)
	return id, nil
}

// getter

func (g *SearchGraph[W, E]) VertexCount() int {
	return len(g.incidence)
}

func (g *SearchGraph[W, E]) EdgeCount() int {
	return len(g.edges)
}

func (g *SearchGraph[W, E]) Edge(id int) E {
	return g.edges[id]
}

func (g *SearchGraph[W, E]) IncidentEdges(v int) []int {
	return g.incidence[v]
}

func (g *SearchGraph[W, E]) reconstructPath(prevEdge []int, end int, weight W) Path[W] {
	pathBeforeReversed := make([]int, 0)
	for cur := end; prevEdge[cur] != NO_EDGE; {
		id := prevEdge[cur]
		pathBeforeReversed = append(pathBeforeReversed, id)
		cur = g.edges[id].From()
	}
	return Path[W]{Edges: lo.Reverse(pathBeforeReversed), Weight: weight}
}

// Dijkstra算法求start到end的最短路，不可达时返回false
// start == end时返回不含边、边权为0的路径
func (g *SearchGraph[W, E]) ShortestPath(start, end int) (Path[W], bool) {
	n := len(g.incidence)
	if start < 0 || start >= n || end < 0 || end >= n {
		return Path[W]{}, false
	}
	if start == end {
		return Path[W]{Edges: []int{}}, true
	}
	dist := make([]W, n)
	reached := make([]bool, n)
	closed := make([]bool, n)
	prevEdge := make([]int, n)
	items := make([]*Item[W], n)
	for i := range prevEdge {
		prevEdge[i] = NO_EDGE
	}
	reached[start] = true
	openSet := PriorityQueue[W]{}
	items[start] = &Item[W]{Value: start}
	heap.Push(&openSet, items[start])
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item[W]).Value
		closed[cur] = true
		if cur == end {
			return g.reconstructPath(prevEdge, end, dist[end]), true
		}
		for _, id := range g.incidence[cur] {
			edge := g.edges[id]
			neighbor := edge.To()
			if closed[neighbor] {
				continue
			}
			tentative := dist[cur] + edge.Weight()
			if !reached[neighbor] {
				// 新访问的点
				reached[neighbor] = true
				dist[neighbor] = tentative
				prevEdge[neighbor] = id
				items[neighbor] = &Item[W]{Value: neighbor, Priority: tentative}
				heap.Push(&openSet, items[neighbor])
			} else if tentative < dist[neighbor] {
				// 已在堆中，修改其优先级
				dist[neighbor] = tentative
				prevEdge[neighbor] = id
				items[neighbor].Priority = tentative
				heap.Fix(&openSet, items[neighbor].Index)
			}
		}
	}
	return Path[W]{}, false
}
