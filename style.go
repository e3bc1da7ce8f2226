package md2img

import (
	"errors"
	"fmt"
	"image/color"
)

// ---- Style records ----

// Font attribute values used as style keys. Weights and styles are plain
// strings so user configs can name them directly.
const (
	FamilyRegular   = "regular"
	FamilyMonospace = "monospace"

	WeightRegular = "regular"
	WeightBold    = "bold"

	StyleRegular = "regular"
	StyleItalic  = "italic"
)

// Inset is a top/right/bottom/left pixel quad, in CSS order.
type Inset struct {
	Top, Right, Bottom, Left int
}

// Style is the fixed set of visual properties a node resolves against.
// Every field always holds a usable value once merged over the global
// defaults; nodes never store styles themselves.
type Style struct {
	Color           color.RGBA
	BackgroundColor color.RGBA
	FontFamily      string
	FontSize        int
	FontWeight      string
	FontStyle       string
	LineHeight      float64
	Padding         Inset
	BorderRadius    int
	MarginTop       int
	MarginBottom    int
}

// StyleOverride is a partial Style: nil fields inherit, non-nil fields win.
type StyleOverride struct {
	Color           *color.RGBA
	BackgroundColor *color.RGBA
	FontFamily      *string
	FontSize        *int
	FontWeight      *string
	FontStyle       *string
	LineHeight      *float64
	Padding         *Inset
	BorderRadius    *int
	MarginTop       *int
	MarginBottom    *int
}

func ref[T any](v T) *T { return &v }

// Apply merges o over s field-wise: override wins, else inherit.
func (s Style) Apply(o StyleOverride) Style {
	if o.Color != nil {
		s.Color = *o.Color
	}
	if o.BackgroundColor != nil {
		s.BackgroundColor = *o.BackgroundColor
	}
	if o.FontFamily != nil {
		s.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		s.FontSize = *o.FontSize
	}
	if o.FontWeight != nil {
		s.FontWeight = *o.FontWeight
	}
	if o.FontStyle != nil {
		s.FontStyle = *o.FontStyle
	}
	if o.LineHeight != nil {
		s.LineHeight = *o.LineHeight
	}
	if o.Padding != nil {
		s.Padding = *o.Padding
	}
	if o.BorderRadius != nil {
		s.BorderRadius = *o.BorderRadius
	}
	if o.MarginTop != nil {
		s.MarginTop = *o.MarginTop
	}
	if o.MarginBottom != nil {
		s.MarginBottom = *o.MarginBottom
	}
	return s
}

// merge layers p over o, producing a new partial record.
func (o StyleOverride) merge(p StyleOverride) StyleOverride {
	if p.Color != nil {
		o.Color = p.Color
	}
	if p.BackgroundColor != nil {
		o.BackgroundColor = p.BackgroundColor
	}
	if p.FontFamily != nil {
		o.FontFamily = p.FontFamily
	}
	if p.FontSize != nil {
		o.FontSize = p.FontSize
	}
	if p.FontWeight != nil {
		o.FontWeight = p.FontWeight
	}
	if p.FontStyle != nil {
		o.FontStyle = p.FontStyle
	}
	if p.LineHeight != nil {
		o.LineHeight = p.LineHeight
	}
	if p.Padding != nil {
		o.Padding = p.Padding
	}
	if p.BorderRadius != nil {
		o.BorderRadius = p.BorderRadius
	}
	if p.MarginTop != nil {
		o.MarginTop = p.MarginTop
	}
	if p.MarginBottom != nil {
		o.MarginBottom = p.MarginBottom
	}
	return o
}

// ---- Colors ----

// ParseHexColor converts "#RGB" or "#RRGGBB" into an opaque RGBA value.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, errors.New("md2img: hex color must start with '#'")
	}
	hex := s[1:]
	nib := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	byteAt := func(i int) (uint8, bool) {
		hi, ok1 := nib(hex[i])
		lo, ok2 := nib(hex[i+1])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(hex) {
	case 3:
		var c color.RGBA
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, ok := nib(hex[i])
			if !ok {
				return color.RGBA{}, fmt.Errorf("md2img: invalid hex color %q", s)
			}
			*dst = v<<4 | v
		}
		c.A = 0xFF
		return c, nil
	case 6:
		var c color.RGBA
		var ok [3]bool
		c.R, ok[0] = byteAt(0)
		c.G, ok[1] = byteAt(2)
		c.B, ok[2] = byteAt(4)
		if !ok[0] || !ok[1] || !ok[2] {
			return color.RGBA{}, fmt.Errorf("md2img: invalid hex color %q", s)
		}
		c.A = 0xFF
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("md2img: invalid hex color %q", s)
}

func mustHex(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
