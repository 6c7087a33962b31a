package renderer

import (
	"fmt"
	"io"
	"strings"
)

// 画布上的图元
type Element interface {
	Render(w io.Writer) error
}

// 描边与填充属性，零值不输出
type PathProps struct {
	Fill           *Color
	Stroke         *Color
	StrokeWidth    float64
	StrokeLineCap  string
	StrokeLineJoin string
}

func (p PathProps) attrs() string {
	var b strings.Builder
	if p.Fill != nil {
		fmt.Fprintf(&b, ` fill="%s"`, p.Fill)
	}
	if p.Stroke != nil {
		fmt.Fprintf(&b, ` stroke="%s"`, p.Stroke)
	}
	if p.StrokeWidth != 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, formatNumber(p.StrokeWidth))
	}
	if p.StrokeLineCap != "" {
		fmt.Fprintf(&b, ` stroke-linecap="%s"`, p.StrokeLineCap)
	}
	if p.StrokeLineJoin != "" {
		fmt.Fprintf(&b, ` stroke-linejoin="%s"`, p.StrokeLineJoin)
	}
	return b.String()
}

type Circle struct {
	PathProps
	Center Point
	Radius float64
}

func (c Circle) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, `<circle cx="%s" cy="%s" r="%s"%s/>`,
		formatNumber(c.Center.X), formatNumber(c.Center.Y), formatNumber(c.Radius), c.attrs())
	return err
}

type Polyline struct {
	PathProps
	Points []Point
}

func (p Polyline) Render(w io.Writer) error {
	points := make([]string, 0, len(p.Points))
	for _, pt := range p.Points {
		points = append(points, formatNumber(pt.X)+","+formatNumber(pt.Y))
	}
	_, err := fmt.Fprintf(w, `<polyline points="%s"%s/>`, strings.Join(points, " "), p.attrs())
	return err
}

type Text struct {
	PathProps
	Position   Point
	Offset     Point
	FontSize   int
	FontFamily string
	FontWeight string
	Data       string
}

var textEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
)

func (t Text) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<text%s x="%s" y="%s" dx="%s" dy="%s" font-size="%d"`,
		t.attrs(),
		formatNumber(t.Position.X), formatNumber(t.Position.Y),
		formatNumber(t.Offset.X), formatNumber(t.Offset.Y),
		t.FontSize)
	if t.FontFamily != "" {
		fmt.Fprintf(&b, ` font-family="%s"`, t.FontFamily)
	}
	if t.FontWeight != "" {
		fmt.Fprintf(&b, ` font-weight="%s"`, t.FontWeight)
	}
	fmt.Fprintf(&b, ">%s</text>", textEscaper.Replace(t.Data))
	_, err := io.WriteString(w, b.String())
	return err
}

// SVG文档，图元按加入顺序绘制
type Document struct {
	elements []Element
}

func (d *Document) Add(e Element) {
	d.elements = append(d.elements, e)
}

func (d *Document) Len() int {
	return len(d.elements)
}

func (d *Document) Render(w io.Writer) error {
	if _, err := io.WriteString(w, "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n"); err != nil {
		return err
	}
	for _, e := range d.elements {
		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}
		if err := e.Render(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</svg>")
	return err
}

func (d *Document) String() string {
	var b strings.Builder
	// strings.Builder写入不会失败
	_ = d.Render(&b)
	return b.String()
}
