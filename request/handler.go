package request

import (
	"errors"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/renderer"
	"git.fiblab.net/sim/transit/router"
)

// Handler 在Catalogue、Router与地图绘制之间转发查询
// 只读，可并发使用
type Handler struct {
	catalogue *catalogue.Catalogue
	router    *router.Router
	renderer  *renderer.MapRenderer
}

func NewHandler(c *catalogue.Catalogue, r *router.Router, mr *renderer.MapRenderer) *Handler {
	return &Handler{catalogue: c, router: r, renderer: mr}
}

func (h *Handler) Catalogue() *catalogue.Catalogue {
	return h.catalogue
}

func (h *Handler) Router() *router.Router {
	return h.router
}

func (h *Handler) LineStats(name string) (catalogue.LineStats, error) {
	return h.catalogue.ComputeLineStats(name)
}

func (h *Handler) LinesServing(stopName string) ([]string, error) {
	return h.catalogue.LinesServing(stopName)
}

func (h *Handler) Route(from, to string) (*router.Route, error) {
	return h.router.FindRoute(from, to)
}

func (h *Handler) RenderMap() string {
	return h.renderer.RenderMap(h.catalogue).String()
}

// 应答一个查询请求
// 找不到线路/车站或不可达时返回"not found"
func (h *Handler) Answer(req StatRequest) any {
	switch req.Type {
	case TYPE_BUS:
		stats, err := h.LineStats(req.Name)
		if err != nil {
			return ErrorResponse{RequestID: req.ID, ErrorMessage: NOT_FOUND}
		}
		return BusResponse{
			RequestID:       req.ID,
			Curvature:       stats.Curvature,
			RouteLength:     stats.RouteLength,
			StopCount:       stats.StopCount,
			UniqueStopCount: stats.UniqueStopCount,
		}
	case TYPE_STOP:
		lines, err := h.LinesServing(req.Name)
		if err != nil {
			return ErrorResponse{RequestID: req.ID, ErrorMessage: NOT_FOUND}
		}
		return StopResponse{RequestID: req.ID, Buses: lines}
	case TYPE_ROUTE:
		route, err := h.Route(req.From, req.To)
		if err != nil {
			if !errors.Is(err, router.ErrNoRoute) && !errors.Is(err, catalogue.ErrStopNotFound) {
				log.Warnf("route request %d: %v", req.ID, err)
			}
			return ErrorResponse{RequestID: req.ID, ErrorMessage: NOT_FOUND}
		}
		return NewRouteResponse(req.ID, route)
	case TYPE_MAP:
		return MapResponse{RequestID: req.ID, Map: h.RenderMap()}
	default:
		log.Warnf("unknown stat request type %q (id %d)", req.Type, req.ID)
		return ErrorResponse{RequestID: req.ID, ErrorMessage: "unknown request type"}
	}
}

func (h *Handler) AnswerAll(reqs []StatRequest) []any {
	responses := make([]any, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, h.Answer(req))
	}
	return responses
}
