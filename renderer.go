package md2img

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ---- Renderer orchestration ----

// Renderer walks a node tree twice per render call: once to measure the
// total content height, once to paint. It owns the style stack, the font
// cache and the drawing surface; one instance must not be shared across
// goroutines.
type Renderer struct {
	config  *Config
	fonts   *FontManager
	layout  *LayoutEngine
	styles  []Style
	surface Surface
}

// NewRenderer builds a renderer over cfg, or the default config when nil.
func NewRenderer(cfg *Config) *Renderer {
	if cfg == nil {
		cfg = NewConfig()
	}
	r := &Renderer{
		config: cfg,
		fonts:  NewFontManager(),
	}
	r.layout = &LayoutEngine{r: r}
	return r
}

// Config returns the style configuration.
func (r *Renderer) Config() *Config { return r.config }

// Fonts returns the font metrics provider.
func (r *Renderer) Fonts() *FontManager { return r.fonts }

// Layout returns the line-breaking engine.
func (r *Renderer) Layout() *LayoutEngine { return r.layout }

// Surface returns the active drawing surface. It is only valid while a
// render call is painting.
func (r *Renderer) Surface() Surface { return r.surface }

// ---- Style stack ----

// CurrentStyle returns the style stack top, or the resolved global style
// when the stack is empty.
func (r *Renderer) CurrentStyle() Style {
	if len(r.styles) == 0 {
		return r.config.Global()
	}
	return r.styles[len(r.styles)-1]
}

// PushStyle layers o onto the current style and returns the pop. Callers
// defer it so the previous top is restored on every exit path, including
// panics inside the scope.
func (r *Renderer) PushStyle(o StyleOverride) func() {
	r.styles = append(r.styles, r.CurrentStyle().Apply(o))
	return func() { r.styles = r.styles[:len(r.styles)-1] }
}

// StyleFor resolves the named per-type style over the global defaults.
func (r *Renderer) StyleFor(name string) Style { return r.config.StyleFor(name) }

// HeadingStyle resolves the style for heading level 1..6.
func (r *Renderer) HeadingStyle(level int) Style {
	return r.StyleFor(fmt.Sprintf("h%d", level))
}

// CurrentFace resolves the font handle for the current style.
func (r *Renderer) CurrentFace() *Face {
	s := r.CurrentStyle()
	return r.fonts.Get(s.FontFamily, s.FontSize, s.FontWeight, s.FontStyle)
}

// HeadingFace resolves the font handle for heading level 1..6.
func (r *Renderer) HeadingFace(level int) *Face {
	s := r.HeadingStyle(level)
	return r.fonts.Get(s.FontFamily, s.FontSize, s.FontWeight, s.FontStyle)
}

// ---- Two-pass rendering ----

// MeasureHeight runs the measure pass alone: the total canvas height the
// tree needs at the given width, global padding included.
func (r *Renderer) MeasureHeight(root Node, width int) int {
	global := r.config.Global()
	pad := global.Padding
	contentWidth := width - pad.Left - pad.Right

	r.styles = r.styles[:0]
	defer r.PushStyle(StyleOverride{})()
	return root.MeasureHeight(r, contentWidth) + pad.Top + pad.Bottom
}

// RenderImage renders root at the given width. height <= 0 means size the
// canvas to the measured content; an explicit height is honored without
// overflow validation (content clips silently). The style stack is seeded
// fresh with the global style for each pass.
func (r *Renderer) RenderImage(root Node, width, height int) (*image.RGBA, error) {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = r.MeasureHeight(root, width)
	}

	global := r.config.Global()
	pad := global.Padding
	contentWidth := width - pad.Left - pad.Right

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	surface := newImageSurface(img)
	surface.FillRect(img.Bounds(), global.BackgroundColor)
	r.surface = surface
	defer func() { r.surface = nil }()

	r.styles = r.styles[:0]
	defer r.PushStyle(StyleOverride{})()
	root.Render(r, pad.Left, pad.Top, contentWidth)

	if err := surface.Err(); err != nil {
		return nil, fmt.Errorf("md2img: render: %w", err)
	}
	return img, nil
}

// RenderFile renders root and writes it to path, encoding PNG or JPEG by
// the file extension. Nothing is written when rendering fails.
func (r *Renderer) RenderFile(root Node, path string, width, height int) error {
	img, err := r.RenderImage(root, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		return errors.New("md2img: unsupported output extension: " + ext)
	}
}
