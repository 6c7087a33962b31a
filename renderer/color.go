package renderer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var ErrInvalidColor = errors.New("invalid color")

// 颜色，可以是名称、rgb或rgba
// JSON/YAML中的写法："red"、[255, 0, 0]、[255, 0, 0, 0.5]
type Color struct {
	Name    string
	R, G, B uint8
	Opacity float64
	IsRGB   bool
	IsRGBA  bool
}

var NoneColor = Color{Name: "none"}

func NamedColor(name string) Color {
	return Color{Name: name}
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, IsRGB: true}
}

func RGBA(r, g, b uint8, opacity float64) Color {
	return Color{R: r, G: g, B: b, Opacity: opacity, IsRGBA: true}
}

func (c Color) String() string {
	switch {
	case c.IsRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatNumber(c.Opacity))
	case c.IsRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	case c.Name == "":
		return "none"
	default:
		return c.Name
	}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = NamedColor(name)
		return nil
	}
	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidColor, data)
	}
	return c.fromParts(parts)
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = NamedColor(value.Value)
		return nil
	}
	var parts []float64
	if err := value.Decode(&parts); err != nil {
		return fmt.Errorf("%w: line %d", ErrInvalidColor, value.Line)
	}
	return c.fromParts(parts)
}

func (c *Color) fromParts(parts []float64) error {
	if len(parts) == 3 || len(parts) == 4 {
		for _, v := range parts[:3] {
			if v < 0 || v > 255 {
				return fmt.Errorf("%w: component %v out of [0, 255]", ErrInvalidColor, v)
			}
		}
	}
	switch len(parts) {
	case 3:
		*c = RGB(uint8(parts[0]), uint8(parts[1]), uint8(parts[2]))
	case 4:
		*c = RGBA(uint8(parts[0]), uint8(parts[1]), uint8(parts[2]), parts[3])
	default:
		return fmt.Errorf("%w: %d components", ErrInvalidColor, len(parts))
	}
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch {
	case c.IsRGBA:
		return json.Marshal([]any{c.R, c.G, c.B, c.Opacity})
	case c.IsRGB:
		return json.Marshal([]int{int(c.R), int(c.G), int(c.B)})
	default:
		return json.Marshal(c.Name)
	}
}

// 与流输出一致的数字格式，6位有效数字
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
