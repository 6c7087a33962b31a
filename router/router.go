package router

import (
	"errors"
	"fmt"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router/algo"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("module", "router")

	ErrNoRoute         = errors.New("no route")
	ErrInvalidSettings = errors.New("invalid routing settings")
)

type Router struct {
	// graph Topo
	//
	//   [A waiting] --wait--> [A boarded] --ride line 1, span 2--> [C waiting] --wait--> [C boarded]
	//                              \                                   ^
	//                               --ride line 1, span 1--> [B waiting] ...
	//
	// 1. 每个车站对应两个点：按车站名排序后的第k个车站为waiting点2k与boarded点2k+1
	// 2. 边有两类：
	//    - 候车边(waiting->boarded) cost为候车时间
	//    - 乘车边(boarded(i)->waiting(j)) 线路上i在j之前，cost为i到j的累计道路距离/速度
	//      非环线同时加入j->i方向的边，距离按反方向累计
	// 3. 建图后只读
	catalogue *catalogue.Catalogue
	settings  Settings

	// 车站 -> waiting点
	stopVertex map[catalogue.StopID]int
	graph      *algo.SearchGraph[float64, Edge]
}

func New(c *catalogue.Catalogue, settings Settings) (*Router, error) {
	if err := validator.New().Struct(settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	r := &Router{catalogue: c, settings: settings}
	if err := r.buildBusGraph(); err != nil {
		return nil, err
	}
	log.Debugf("bus graph built: %d vertices, %d edges", r.graph.VertexCount(), r.graph.EdgeCount())
	return r, nil
}

// 从from站到to站用时最短的出行方案
// from == to时返回用时为0的空方案
func (r *Router) FindRoute(from, to string) (*Route, error) {
	fromStop, ok := r.catalogue.FindStop(from)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalogue.ErrStopNotFound, from)
	}
	toStop, ok := r.catalogue.FindStop(to)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalogue.ErrStopNotFound, to)
	}
	path, ok := r.graph.ShortestPath(r.stopVertex[fromStop.ID], r.stopVertex[toStop.ID])
	if !ok {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNoRoute, from, to)
	}
	route := &Route{TotalTime: path.Weight, Items: make([]RouteItem, 0, len(path.Edges))}
	for _, id := range path.Edges {
		edge := r.graph.Edge(id)
		item := RouteItem{Kind: edge.Kind, Time: edge.weight}
		switch edge.Kind {
		case EDGE_WAIT:
			item.StopName = r.catalogue.Stop(edge.Stop).Name
		case EDGE_RIDE:
			item.LineName = r.catalogue.Line(edge.Line).Name
			item.SpanCount = edge.SpanCount
		}
		route.Items = append(route.Items, item)
	}
	return route, nil
}

// getter

func (r *Router) Settings() Settings {
	return r.settings
}

func (r *Router) VertexCount() int {
	return r.graph.VertexCount()
}

func (r *Router) EdgeCount() int {
	return r.graph.EdgeCount()
}

func (r *Router) Edge(id int) Edge {
	return r.graph.Edge(id)
}

// 车站的waiting点与boarded点
func (r *Router) StopVertices(name string) (waiting, boarded int, ok bool) {
	stop, ok := r.catalogue.FindStop(name)
	if !ok {
		return algo.NO_VERTEX, algo.NO_VERTEX, false
	}
	waiting = r.stopVertex[stop.ID]
	return waiting, waiting + 1, true
}
