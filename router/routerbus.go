package router

import (
	"fmt"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router/algo"
)

// BusGraph 车站->车站的乘车导航
func (r *Router) buildBusGraph() error {
	stops := r.catalogue.AllStopsSorted()
	graph := algo.NewSearchGraph[float64, Edge](2 * len(stops))
	r.stopVertex = make(map[catalogue.StopID]int, len(stops))
	// 候车边
	for index, stop := range stops {
		waiting := 2 * index
		r.stopVertex[stop.ID] = waiting
		if _, err := graph.AddEdge(Edge{
			from:   waiting,
			to:     waiting + 1,
			weight: float64(r.settings.BusWaitTime),
			Kind:   EDGE_WAIT,
			Stop:   stop.ID,
			Line:   catalogue.NO_LINE,
		}); err != nil {
			return fmt.Errorf("wait edge at %q: %w", stop.Name, err)
		}
	}
	// 乘车边
	metersPerMinute := r.settings.BusVelocity * KMH_TO_M_PER_MIN
	for _, line := range r.catalogue.AllLinesSorted() {
		forward, backward := r.cumulativeDistances(line.Stops)
		n := len(line.Stops)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				from := r.stopVertex[line.Stops[i]]
				to := r.stopVertex[line.Stops[j]]
				if _, err := graph.AddEdge(Edge{
					from:      from + 1,
					to:        to,
					weight:    float64(forward[j]-forward[i]) / metersPerMinute,
					Kind:      EDGE_RIDE,
					Stop:      catalogue.NO_STOP,
					Line:      line.ID,
					SpanCount: j - i,
				}); err != nil {
					return fmt.Errorf("ride edge on %q: %w", line.Name, err)
				}
				if line.IsRoundtrip {
					continue
				}
				if _, err := graph.AddEdge(Edge{
					from:      to + 1,
					to:        from,
					weight:    float64(backward[j]-backward[i]) / metersPerMinute,
					Kind:      EDGE_RIDE,
					Stop:      catalogue.NO_STOP,
					Line:      line.ID,
					SpanCount: j - i,
				}); err != nil {
					return fmt.Errorf("ride edge on %q: %w", line.Name, err)
				}
			}
		}
	}
	r.graph = graph
	return nil
}

// 沿车站序列的累计道路距离
// forward[k]为stops[0]顺行到stops[k]的距离，backward[k]为stops[k]逆行到stops[0]的距离
func (r *Router) cumulativeDistances(stops []catalogue.StopID) (forward, backward []int) {
	forward = make([]int, len(stops))
	backward = make([]int, len(stops))
	for k := 1; k < len(stops); k++ {
		forward[k] = forward[k-1] + r.catalogue.GetDistance(stops[k-1], stops[k])
		backward[k] = backward[k-1] + r.catalogue.GetDistance(stops[k], stops[k-1])
	}
	return
}
