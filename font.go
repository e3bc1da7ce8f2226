package md2img

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// ---- Font metrics provider ----

// Face is a sized, cached font handle answering advance and bounding-box
// queries for the layout engine and exposing the parsed font to the
// drawing surface.
type Face struct {
	fnt  *truetype.Font
	face font.Face
	size int
}

// Advance returns the horizontal advance of s in pixels.
func (f *Face) Advance(s string) int {
	if f == nil || s == "" {
		return 0
	}
	var d font.Drawer
	d.Face = f.face
	d.Src = image.NewUniform(color.Black)
	return d.MeasureString(s).Round()
}

// Bounds returns the bounding box of s as (x0, y0, x1, y1) relative to the
// text origin, y growing downward.
func (f *Face) Bounds(s string) (x0, y0, x1, y1 int) {
	if f == nil || s == "" {
		return 0, 0, 0, 0
	}
	b, _ := font.BoundString(f.face, s)
	return b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()
}

// TextHeight is the vertical extent of s's bounding box.
func (f *Face) TextHeight(s string) int {
	_, y0, _, y1 := f.Bounds(s)
	return y1 - y0
}

// Ascent is the distance from the top of the text box to the baseline.
func (f *Face) Ascent() int {
	if f == nil {
		return 0
	}
	return f.face.Metrics().Ascent.Ceil()
}

// Size returns the pixel size the face was created at.
func (f *Face) Size() int { return f.size }

type fontKey struct {
	family string
	size   int
	weight string
	style  string
}

// FontManager loads, caches and falls back between fonts. The cache is pure
// memoization keyed by (family, size, weight, style); it only grows until
// ClearCache.
type FontManager struct {
	cache       map[fontKey]*Face
	searchPaths []string
	customPaths []string
	files       map[string]string
}

// NewFontManager returns a manager searching the usual OS font directories
// and falling back to the bundled Go fonts when nothing on disk matches.
func NewFontManager() *FontManager {
	return &FontManager{
		cache: make(map[fontKey]*Face),
		searchPaths: []string{
			"C:/Windows/Fonts",
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			"/Library/Fonts",
			"/System/Library/Fonts",
		},
		files: map[string]string{
			FamilyRegular:   "DejaVuSans.ttf",
			WeightBold:      "DejaVuSans-Bold.ttf",
			StyleItalic:     "DejaVuSans-Oblique.ttf",
			FamilyMonospace: "DejaVuSansMono.ttf",
		},
	}
}

// AddFontPath prepends a directory to the font search path. Non-directories
// are ignored.
func (m *FontManager) AddFontPath(path string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		m.customPaths = append(m.customPaths, path)
	}
}

// SetFontFile maps a family/weight/style role ("regular", "bold", "italic",
// "monospace") to a font file name looked up in the search paths.
func (m *FontManager) SetFontFile(role, file string) {
	m.files[role] = file
}

// Get returns the face for the key, loading and caching it on first use.
// Get never fails: every fallback exhausts into the bundled Go fonts.
func (m *FontManager) Get(family string, size int, weight, style string) *Face {
	if size <= 0 {
		size = 14
	}
	key := fontKey{family: family, size: size, weight: weight, style: style}
	if f, ok := m.cache[key]; ok {
		return f
	}
	f := m.load(family, size, weight, style)
	m.cache[key] = f
	return f
}

// ClearCache drops every cached face.
func (m *FontManager) ClearCache() {
	m.cache = make(map[fontKey]*Face)
}

func (m *FontManager) load(family string, size int, weight, style string) *Face {
	// Pick the most specific file role first, then walk the chain down to
	// the regular face. File access failures fall through silently.
	var roles []string
	if weight != WeightRegular && weight != "" {
		roles = append(roles, weight)
	}
	if style == StyleItalic {
		roles = append(roles, StyleItalic)
	}
	roles = append(roles, family, FamilyRegular)

	for _, role := range roles {
		file, ok := m.files[role]
		if !ok {
			continue
		}
		if f := m.tryLoad(file, size); f != nil {
			return f
		}
	}
	return builtinFace(family, size, weight, style)
}

func (m *FontManager) tryLoad(file string, size int) *Face {
	for _, dir := range append(append([]string{}, m.customPaths...), m.searchPaths...) {
		path := filepath.Join(dir, file)
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fnt, err := truetype.Parse(b)
		if err != nil {
			continue
		}
		return newFace(fnt, size)
	}
	return nil
}

func newFace(fnt *truetype.Font, size int) *Face {
	face := truetype.NewFace(fnt, &truetype.Options{
		Size:    float64(size),
		DPI:     96,
		Hinting: font.HintingFull,
	})
	return &Face{fnt: fnt, face: face, size: size}
}

// builtinFace returns a face over the bundled Go fonts; parse cannot fail
// for the embedded data.
func builtinFace(family string, size int, weight, style string) *Face {
	var ttf []byte
	switch {
	case family == FamilyMonospace:
		ttf = gomono.TTF
	case weight == WeightBold && style == StyleItalic:
		ttf = gobolditalic.TTF
	case weight == WeightBold:
		ttf = gobold.TTF
	case style == StyleItalic:
		ttf = goitalic.TTF
	default:
		ttf = goregular.TTF
	}
	fnt, err := truetype.Parse(ttf)
	if err != nil {
		fnt, _ = truetype.Parse(goregular.TTF)
	}
	return newFace(fnt, size)
}
