package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

var (
	ErrStopNotFound    = errors.New("stop not found")
	ErrLineNotFound    = errors.New("line not found")
	ErrDuplicateStop   = errors.New("duplicate stop")
	ErrDuplicateLine   = errors.New("duplicate line")
	ErrMalformedLine   = errors.New("malformed line")
	ErrInvalidDistance = errors.New("invalid distance")
)

type stopPair struct {
	From StopID
	To   StopID
}

// Catalogue 持有全部车站、线路与车站间的有向道路距离
// 车站与线路只追加不删除，以整数句柄引用；构建完成后只读
type Catalogue struct {
	stops       []*Stop
	stopsByName map[string]StopID
	lines       []*Line
	linesByName map[string]LineID
	distances   map[stopPair]int
}

func New() *Catalogue {
	return &Catalogue{
		stops:       make([]*Stop, 0),
		stopsByName: make(map[string]StopID),
		lines:       make([]*Line, 0),
		linesByName: make(map[string]LineID),
		distances:   make(map[stopPair]int),
	}
}

func (c *Catalogue) AddStop(name string, coordinates geo.Coordinates) (StopID, error) {
	if _, ok := c.stopsByName[name]; ok {
		return NO_STOP, fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	id := StopID(len(c.stops))
	c.stops = append(c.stops, &Stop{
		ID:          id,
		Name:        name,
		Coordinates: coordinates,
		lines:       make(map[string]struct{}),
	})
	c.stopsByName[name] = id
	return id, nil
}

// 加入线路，并在经过的每个车站登记线路名
// 环线的首末站必须相同
func (c *Catalogue) AddLine(name string, stops []StopID, isRoundtrip bool) (LineID, error) {
	if _, ok := c.linesByName[name]; ok {
		return NO_LINE, fmt.Errorf("%w: %q", ErrDuplicateLine, name)
	}
	if len(stops) == 0 {
		return NO_LINE, fmt.Errorf("%w: %q has no stops", ErrMalformedLine, name)
	}
	for _, id := range stops {
		if !c.hasStop(id) {
			return NO_LINE, fmt.Errorf("%w: %q references unknown stop %d", ErrMalformedLine, name, id)
		}
	}
	if isRoundtrip && stops[0] != stops[len(stops)-1] {
		return NO_LINE, fmt.Errorf("%w: roundtrip %q starts at %q and ends at %q",
			ErrMalformedLine, name, c.stops[stops[0]].Name, c.stops[stops[len(stops)-1]].Name)
	}
	id := LineID(len(c.lines))
	c.lines = append(c.lines, &Line{
		ID:          id,
		Name:        name,
		Stops:       append([]StopID(nil), stops...),
		IsRoundtrip: isRoundtrip,
	})
	c.linesByName[name] = id
	for _, stopID := range stops {
		c.stops[stopID].lines[name] = struct{}{}
	}
	return id, nil
}

func (c *Catalogue) AddLineByNames(name string, stopNames []string, isRoundtrip bool) (LineID, error) {
	stops := make([]StopID, 0, len(stopNames))
	for _, stopName := range stopNames {
		id, ok := c.stopsByName[stopName]
		if !ok {
			return NO_LINE, fmt.Errorf("line %q: %w: %q", name, ErrStopNotFound, stopName)
		}
		stops = append(stops, id)
	}
	return c.AddLine(name, stops, isRoundtrip)
}

// 设置from->to的道路距离，重复设置时覆盖
func (c *Catalogue) SetDistance(from, to StopID, meters int) error {
	if !c.hasStop(from) || !c.hasStop(to) {
		return fmt.Errorf("%w: distance %d->%d", ErrStopNotFound, from, to)
	}
	if meters < 0 {
		return fmt.Errorf("%w: %d m from %q to %q", ErrInvalidDistance, meters, c.stops[from].Name, c.stops[to].Name)
	}
	c.distances[stopPair{From: from, To: to}] = meters
	return nil
}

func (c *Catalogue) SetDistanceByNames(from, to string, meters int) error {
	fromID, ok := c.stopsByName[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrStopNotFound, from)
	}
	toID, ok := c.stopsByName[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrStopNotFound, to)
	}
	return c.SetDistance(fromID, toID, meters)
}

// from->to的道路距离，未设置时使用to->from，都未设置时为0
func (c *Catalogue) GetDistance(from, to StopID) int {
	if d, ok := c.distances[stopPair{From: from, To: to}]; ok {
		return d
	}
	if d, ok := c.distances[stopPair{From: to, To: from}]; ok {
		return d
	}
	return 0
}

// getter

func (c *Catalogue) FindStop(name string) (*Stop, bool) {
	id, ok := c.stopsByName[name]
	if !ok {
		return nil, false
	}
	return c.stops[id], true
}

func (c *Catalogue) FindLine(name string) (*Line, bool) {
	id, ok := c.linesByName[name]
	if !ok {
		return nil, false
	}
	return c.lines[id], true
}

func (c *Catalogue) Stop(id StopID) *Stop {
	return c.stops[id]
}

func (c *Catalogue) Line(id LineID) *Line {
	return c.lines[id]
}

func (c *Catalogue) StopCount() int {
	return len(c.stops)
}

func (c *Catalogue) LineCount() int {
	return len(c.lines)
}

func (c *Catalogue) hasStop(id StopID) bool {
	return id >= 0 && int(id) < len(c.stops)
}

// 经过该车站的线路名，按字典序
func (c *Catalogue) LinesServing(stopName string) ([]string, error) {
	stop, ok := c.FindStop(stopName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStopNotFound, stopName)
	}
	return stop.Lines(), nil
}

func (c *Catalogue) AllStopsSorted() []*Stop {
	stops := append([]*Stop(nil), c.stops...)
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].Name < stops[j].Name
	})
	return stops
}

func (c *Catalogue) AllLinesSorted() []*Line {
	lines := append([]*Line(nil), c.lines...)
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// 线路实际经过的车站坐标
func (c *Catalogue) PathCoordinates(line *Line) []geo.Coordinates {
	return lo.Map(line.EffectivePath(), func(id StopID, _ int) geo.Coordinates {
		return c.stops[id].Coordinates
	})
}
