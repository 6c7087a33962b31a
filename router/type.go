package router

import "git.fiblab.net/sim/transit/catalogue"

const (
	// km/h -> m/min
	KMH_TO_M_PER_MIN = 1000.0 / 60.0
)

// 路径规划参数
type Settings struct {
	// 车站候车时间（分钟）
	BusWaitTime int `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=0,lte=1000"`
	// 公交平均速度（km/h）
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity" validate:"gt=0,lte=1000"`
}

type EdgeKind int

const (
	// 候车：车站waiting点 -> boarded点
	EDGE_WAIT EdgeKind = iota
	// 乘车：boarded点 -> 下车站waiting点
	EDGE_RIDE
)

func (k EdgeKind) String() string {
	switch k {
	case EDGE_WAIT:
		return "Wait"
	case EDGE_RIDE:
		return "Bus"
	default:
		return "Unknown"
	}
}

// 图中的边，实现algo.IEdge[float64]
type Edge struct {
	from, to int
	weight   float64

	Kind EdgeKind
	// 候车边对应的车站
	Stop catalogue.StopID
	// 乘车边对应的线路与经过的站数
	Line      catalogue.LineID
	SpanCount int
}

func (e Edge) From() int       { return e.from }
func (e Edge) To() int         { return e.to }
func (e Edge) Weight() float64 { return e.weight }

type RouteItem struct {
	Kind      EdgeKind
	StopName  string // EDGE_WAIT
	LineName  string // EDGE_RIDE
	SpanCount int    // EDGE_RIDE
	Time      float64
}

type Route struct {
	TotalTime float64
	Items     []RouteItem
}
