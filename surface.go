package md2img

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
)

// ---- Drawing surface ----

// Surface is the primitive raster interface node render methods draw
// against. Coordinates are pixels; text y is the top of the text box, not
// the baseline.
type Surface interface {
	FillRect(r image.Rectangle, c color.Color)
	RoundedRect(r image.Rectangle, c color.Color, radius int)
	Line(x0, y0, x1, y1 int, c color.Color, width int)
	Text(x, y int, s string, f *Face, c color.Color)
}

// imageSurface draws onto an RGBA image through a freetype context. The
// first glyph-drawing error is kept and reported after the paint walk.
type imageSurface struct {
	img *image.RGBA
	dc  *freetype.Context
	err error
}

func newImageSurface(img *image.RGBA) *imageSurface {
	dc := freetype.NewContext()
	dc.SetDPI(96)
	dc.SetClip(img.Bounds())
	dc.SetDst(img)
	return &imageSurface{img: img, dc: dc}
}

// Err reports the first drawing failure, if any.
func (s *imageSurface) Err() error { return s.err }

func (s *imageSurface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *imageSurface) RoundedRect(r image.Rectangle, c color.Color, radius int) {
	if radius <= 0 {
		s.FillRect(r, c)
		return
	}
	w, h := r.Dx(), r.Dy()
	if radius*2 > w {
		radius = w / 2
	}
	if radius*2 > h {
		radius = h / 2
	}
	src := image.NewUniform(c)
	for y := 0; y < h; y++ {
		inset := 0
		if y < radius {
			dy := float64(radius - y)
			inset = radius - int(math.Sqrt(float64(radius*radius)-dy*dy))
		} else if y >= h-radius {
			dy := float64(y - (h - radius - 1))
			inset = radius - int(math.Sqrt(float64(radius*radius)-dy*dy))
		}
		row := image.Rect(r.Min.X+inset, r.Min.Y+y, r.Max.X-inset, r.Min.Y+y+1)
		draw.Draw(s.img, row, src, image.Point{}, draw.Src)
	}
}

func (s *imageSurface) Line(x0, y0, x1, y1 int, c color.Color, width int) {
	if width <= 0 {
		width = 1
	}
	switch {
	case y0 == y1:
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		s.FillRect(image.Rect(x0, y0, x1, y0+width), c)
	case x0 == x1:
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		s.FillRect(image.Rect(x0, y0, x0+width, y1), c)
	default:
		// Sloped lines are not produced by any node; step naively.
		steps := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= steps; i++ {
			x := x0 + (x1-x0)*i/steps
			y := y0 + (y1-y0)*i/steps
			s.FillRect(image.Rect(x, y, x+width, y+width), c)
		}
	}
}

func (s *imageSurface) Text(x, y int, str string, f *Face, c color.Color) {
	if f == nil || str == "" {
		return
	}
	s.dc.SetFont(f.fnt)
	s.dc.SetFontSize(float64(f.size))
	s.dc.SetSrc(image.NewUniform(c))
	pt := freetype.Pt(x, y+f.Ascent())
	if _, err := s.dc.DrawString(str, pt); err != nil && s.err == nil {
		s.err = err
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
