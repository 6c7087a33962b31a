package request

import (
	"io"

	"git.fiblab.net/sim/transit/router"
	"github.com/goccy/go-json"
)

const NOT_FOUND = "not found"

type ErrorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

type BusResponse struct {
	RequestID       int     `json:"request_id"`
	Curvature       float64 `json:"curvature"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

type StopResponse struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

type MapResponse struct {
	RequestID int    `json:"request_id"`
	Map       string `json:"map"`
}

type RouteItemResponse struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

type RouteResponse struct {
	RequestID int                 `json:"request_id"`
	TotalTime float64             `json:"total_time"`
	Items     []RouteItemResponse `json:"items"`
}

func NewRouteResponse(id int, route *router.Route) RouteResponse {
	res := RouteResponse{
		RequestID: id,
		TotalTime: route.TotalTime,
		Items:     make([]RouteItemResponse, 0, len(route.Items)),
	}
	for _, item := range route.Items {
		res.Items = append(res.Items, RouteItemResponse{
			Type:      item.Kind.String(),
			StopName:  item.StopName,
			Bus:       item.LineName,
			SpanCount: item.SpanCount,
			Time:      item.Time,
		})
	}
	return res
}

// 以JSON数组输出全部应答
func WriteJSON(w io.Writer, responses []any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(responses)
}
