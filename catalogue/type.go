package catalogue

import (
	"sort"

	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

// 车站/线路在Catalogue中的句柄
type StopID int
type LineID int

const (
	NO_STOP StopID = -1
	NO_LINE LineID = -1
)

type Stop struct {
	ID          StopID
	Name        string
	Coordinates geo.Coordinates

	// 经过此车站的线路名
	lines map[string]struct{}
}

// 经过此车站的线路名，按字典序
func (s *Stop) Lines() []string {
	names := lo.Keys(s.lines)
	sort.Strings(names)
	return names
}

type Line struct {
	ID   LineID
	Name string
	// 声明的车站序列，环线首末站相同
	Stops       []StopID
	IsRoundtrip bool
}

// 线路实际行驶经过的车站序列
// 非环线为去程加上不含折返站的回程：A B C -> A B C B A
func (l *Line) EffectivePath() []StopID {
	if l.IsRoundtrip {
		return l.Stops
	}
	if len(l.Stops) == 0 {
		return []StopID{}
	}
	path := make([]StopID, 0, 2*len(l.Stops)-1)
	path = append(path, l.Stops...)
	for i := len(l.Stops) - 2; i >= 0; i-- {
		path = append(path, l.Stops[i])
	}
	return path
}

type LineStats struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	Curvature       float64
}
