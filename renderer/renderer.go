package renderer

import (
	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

const (
	FONT_FAMILY    = "Verdana"
	LINECAP_ROUND  = "round"
	LINEJOIN_ROUND = "round"
)

// 地图绘制参数
type Settings struct {
	Width             float64 `json:"width" yaml:"width" validate:"gte=0,lte=100000"`
	Height            float64 `json:"height" yaml:"height" validate:"gte=0,lte=100000"`
	Padding           float64 `json:"padding" yaml:"padding" validate:"gte=0"`
	StopRadius        float64 `json:"stop_radius" yaml:"stop_radius" validate:"gte=0,lte=100000"`
	LineWidth         float64 `json:"line_width" yaml:"line_width" validate:"gte=0,lte=100000"`
	BusLabelFontSize  int     `json:"bus_label_font_size" yaml:"bus_label_font_size" validate:"gte=0,lte=100000"`
	BusLabelOffset    Point   `json:"bus_label_offset" yaml:"bus_label_offset"`
	StopLabelFontSize int     `json:"stop_label_font_size" yaml:"stop_label_font_size" validate:"gte=0,lte=100000"`
	StopLabelOffset   Point   `json:"stop_label_offset" yaml:"stop_label_offset"`
	UnderlayerColor   Color   `json:"underlayer_color" yaml:"underlayer_color"`
	UnderlayerWidth   float64 `json:"underlayer_width" yaml:"underlayer_width" validate:"gte=0,lte=100000"`
	ColorPalette      []Color `json:"color_palette" yaml:"color_palette"`
}

type MapRenderer struct {
	settings Settings
}

func New(settings Settings) *MapRenderer {
	return &MapRenderer{settings: settings}
}

func (r *MapRenderer) paletteColor(index int) Color {
	if len(r.settings.ColorPalette) == 0 {
		return NoneColor
	}
	return r.settings.ColorPalette[index%len(r.settings.ColorPalette)]
}

// 绘制地图：线路折线、线路名、车站圆点、车站名，依次叠放
func (r *MapRenderer) RenderMap(c *catalogue.Catalogue) *Document {
	lines := lo.Filter(c.AllLinesSorted(), func(l *catalogue.Line, _ int) bool {
		return len(l.Stops) > 0
	})
	// 只绘制有线路经过的车站
	stops := lo.Filter(c.AllStopsSorted(), func(s *catalogue.Stop, _ int) bool {
		return len(s.Lines()) > 0
	})
	proj := NewSphereProjector(lo.Map(stops, func(s *catalogue.Stop, _ int) geo.Coordinates {
		return s.Coordinates
	}), r.settings.Width, r.settings.Height, r.settings.Padding)

	doc := &Document{}
	for index, line := range lines {
		doc.Add(r.routeLine(c, line, index, proj))
	}
	for index, line := range lines {
		for _, e := range r.lineLabels(c, line, index, proj) {
			doc.Add(e)
		}
	}
	for _, stop := range stops {
		doc.Add(r.stopCircle(stop, proj))
	}
	for _, stop := range stops {
		underlayer, label := r.stopLabel(stop, proj)
		doc.Add(underlayer)
		doc.Add(label)
	}
	return doc
}

func (r *MapRenderer) routeLine(c *catalogue.Catalogue, line *catalogue.Line, index int, proj SphereProjector) Polyline {
	stroke := r.paletteColor(index)
	fill := NoneColor
	return Polyline{
		PathProps: PathProps{
			Fill:           &fill,
			Stroke:         &stroke,
			StrokeWidth:    r.settings.LineWidth,
			StrokeLineCap:  LINECAP_ROUND,
			StrokeLineJoin: LINEJOIN_ROUND,
		},
		Points: lo.Map(c.PathCoordinates(line), func(p geo.Coordinates, _ int) Point {
			return proj.Project(p)
		}),
	}
}

func (r *MapRenderer) underlayer(t Text) Text {
	color := r.settings.UnderlayerColor
	t.PathProps = PathProps{
		Fill:           &color,
		Stroke:         &color,
		StrokeWidth:    r.settings.UnderlayerWidth,
		StrokeLineCap:  LINECAP_ROUND,
		StrokeLineJoin: LINEJOIN_ROUND,
	}
	return t
}

// 线路名标注在起点站，非环线且终点站不同时也标注在终点站
func (r *MapRenderer) lineLabels(c *catalogue.Catalogue, line *catalogue.Line, index int, proj SphereProjector) []Element {
	terminals := []catalogue.StopID{line.Stops[0]}
	last := line.Stops[len(line.Stops)-1]
	if !line.IsRoundtrip && last != line.Stops[0] {
		terminals = append(terminals, last)
	}
	color := r.paletteColor(index)
	elements := make([]Element, 0, 2*len(terminals))
	for _, id := range terminals {
		label := Text{
			PathProps:  PathProps{Fill: &color},
			Position:   proj.Project(c.Stop(id).Coordinates),
			Offset:     r.settings.BusLabelOffset,
			FontSize:   r.settings.BusLabelFontSize,
			FontFamily: FONT_FAMILY,
			FontWeight: "bold",
			Data:       line.Name,
		}
		elements = append(elements, r.underlayer(label), label)
	}
	return elements
}

func (r *MapRenderer) stopCircle(stop *catalogue.Stop, proj SphereProjector) Circle {
	fill := NamedColor("white")
	return Circle{
		PathProps: PathProps{Fill: &fill},
		Center:    proj.Project(stop.Coordinates),
		Radius:    r.settings.StopRadius,
	}
}

func (r *MapRenderer) stopLabel(stop *catalogue.Stop, proj SphereProjector) (Text, Text) {
	fill := NamedColor("black")
	label := Text{
		PathProps:  PathProps{Fill: &fill},
		Position:   proj.Project(stop.Coordinates),
		Offset:     r.settings.StopLabelOffset,
		FontSize:   r.settings.StopLabelFontSize,
		FontFamily: FONT_FAMILY,
		Data:       stop.Name,
	}
	return r.underlayer(label), label
}
