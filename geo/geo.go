package geo

import (
	"math"

	"github.com/samber/lo"
)

const (
	// 地球半径（单位：m）
	EARTH_RADIUS = 6371000.0

	degToRad = math.Pi / 180.0
)

// 经纬度坐标
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// 两点之间的大圆距离（单位：m）
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}
	cos := math.Sin(from.Lat*degToRad)*math.Sin(to.Lat*degToRad) +
		math.Cos(from.Lat*degToRad)*math.Cos(to.Lat*degToRad)*math.Cos(math.Abs(from.Lng-to.Lng)*degToRad)
	// 浮点误差可能使cos略超出[-1,1]
	return math.Acos(lo.Clamp(cos, -1, 1)) * EARTH_RADIUS
}

// 折线的大圆长度
func PolylineLength(points []Coordinates) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += ComputeDistance(points[i-1], points[i])
	}
	return length
}
