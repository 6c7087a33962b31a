package catalogue

import (
	"fmt"

	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

// 线路统计信息，按需计算
// 缺失的道路距离按0计，完整的距离数据由调用方保证
func (c *Catalogue) ComputeLineStats(lineName string) (LineStats, error) {
	line, ok := c.FindLine(lineName)
	if !ok {
		return LineStats{}, fmt.Errorf("%w: %q", ErrLineNotFound, lineName)
	}
	path := line.EffectivePath()
	routeLength := 0
	for i := 1; i < len(path); i++ {
		routeLength += c.GetDistance(path[i-1], path[i])
	}
	geoLength := geo.PolylineLength(c.PathCoordinates(line))
	// 直线长度为0（单站或重合车站）时曲折系数记为1
	curvature := 1.0
	if geoLength > 0 {
		curvature = float64(routeLength) / geoLength
	}
	return LineStats{
		StopCount:       len(path),
		UniqueStopCount: len(lo.Uniq(line.Stops)),
		RouteLength:     routeLength,
		Curvature:       curvature,
	}, nil
}
