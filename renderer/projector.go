package renderer

import (
	"fmt"
	"math"

	"git.fiblab.net/sim/transit/geo"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const EPSILON = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < EPSILON
}

type Point struct {
	X, Y float64
}

// JSON/YAML中的写法：[x, y]
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	return p.fromSlice(xy)
}

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	return p.fromSlice(xy)
}

func (p *Point) fromSlice(xy []float64) error {
	if len(xy) != 2 {
		return fmt.Errorf("point needs 2 components, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{p.X, p.Y})
}

// 将经纬度线性投影到画布上，保持长宽比并留出边距
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

func NewSphereProjector(points []geo.Coordinates, width, height, padding float64) SphereProjector {
	p := SphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}
	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, c := range points[1:] {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
		minLng = math.Min(minLng, c.Lng)
		maxLng = math.Max(maxLng, c.Lng)
	}
	p.minLng = minLng
	p.maxLat = maxLat

	var widthZoom, heightZoom *float64
	if !isZero(maxLng - minLng) {
		z := (width - 2*padding) / (maxLng - minLng)
		widthZoom = &z
	}
	if !isZero(maxLat - minLat) {
		z := (height - 2*padding) / (maxLat - minLat)
		heightZoom = &z
	}
	switch {
	case widthZoom != nil && heightZoom != nil:
		p.zoom = math.Min(*widthZoom, *heightZoom)
	case widthZoom != nil:
		p.zoom = *widthZoom
	case heightZoom != nil:
		p.zoom = *heightZoom
	}
	return p
}

func (p SphereProjector) Project(c geo.Coordinates) Point {
	return Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
