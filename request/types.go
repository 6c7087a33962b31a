package request

import (
	"git.fiblab.net/sim/transit/renderer"
	"git.fiblab.net/sim/transit/router"
)

const (
	TYPE_STOP  = "Stop"
	TYPE_BUS   = "Bus"
	TYPE_ROUTE = "Route"
	TYPE_MAP   = "Map"
)

// 构建请求：车站或线路
type BaseRequest struct {
	Type string `json:"type" bson:"type" validate:"oneof=Stop Bus"`
	Name string `json:"name" bson:"name" validate:"required"`

	// Stop
	Latitude      float64        `json:"latitude,omitempty" bson:"latitude,omitempty" validate:"gte=-90,lte=90"`
	Longitude     float64        `json:"longitude,omitempty" bson:"longitude,omitempty" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int `json:"road_distances,omitempty" bson:"road_distances,omitempty" validate:"dive,gte=0"`

	// Bus
	Stops       []string `json:"stops,omitempty" bson:"stops,omitempty" validate:"dive,required"`
	IsRoundtrip bool     `json:"is_roundtrip,omitempty" bson:"is_roundtrip,omitempty"`
}

// 查询请求，ID由调用方给定，原样返回
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// 完整的输入文档
type Document struct {
	BaseRequests    []BaseRequest      `json:"base_requests"`
	StatRequests    []StatRequest      `json:"stat_requests"`
	RoutingSettings *router.Settings   `json:"routing_settings,omitempty"`
	RenderSettings  *renderer.Settings `json:"render_settings,omitempty"`
}
