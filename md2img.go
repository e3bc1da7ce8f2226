// Package md2img converts a small markdown dialect into a laid-out raster
// image: markup is parsed into a typed node tree, each node resolves its
// style against a cascading stack, a greedy line breaker computes geometry
// for the available width, and a two-pass renderer measures then paints
// onto an RGBA canvas.
package md2img

import (
	"fmt"
	"image"
)

// MD2Img is the document builder and conversion entry point. Build the
// tree through the Add helpers or parse it from markdown, then render to
// an image or a file.
type MD2Img struct {
	config   *Config
	root     *Document
	renderer *Renderer
}

// New returns a converter over cfg, or the default config when nil.
func New(cfg *Config) *MD2Img {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &MD2Img{
		config:   cfg,
		root:     NewDocument(),
		renderer: NewRenderer(cfg),
	}
}

// Root returns the document tree built so far.
func (m *MD2Img) Root() *Document { return m.root }

// Renderer returns the underlying renderer (font paths, measurement).
func (m *MD2Img) Renderer() *Renderer { return m.renderer }

// Add appends a node or a string to the document; strings are wrapped as
// paragraphs. Other types report ErrInvalidInput.
func (m *MD2Img) Add(v any) error {
	switch n := v.(type) {
	case string:
		m.root.Add(NewParagraphText(n))
	case Node:
		m.root.Add(n)
	default:
		return fmt.Errorf("%w: cannot add %T", ErrInvalidInput, v)
	}
	return nil
}

// AddHeading appends a heading at the given level.
func (m *MD2Img) AddHeading(text string, level int) *MD2Img {
	m.root.Add(NewHeading(text, level))
	return m
}

// AddParagraph appends a plain text paragraph.
func (m *MD2Img) AddParagraph(text string) *MD2Img {
	m.root.Add(NewParagraphText(text))
	return m
}

// AddHorizontalRule appends a divider.
func (m *MD2Img) AddHorizontalRule() *MD2Img {
	m.root.Add(NewHorizontalRule())
	return m
}

// FromMarkdown replaces the tree with the parse of src.
func (m *MD2Img) FromMarkdown(src string) *MD2Img {
	m.root = Parse(src)
	return m
}

// FromMarkdownFile replaces the tree with the parse of the file at path.
func (m *MD2Img) FromMarkdownFile(path string) error {
	doc, err := ParseFile(path)
	if err != nil {
		return err
	}
	m.root = doc
	return nil
}

// FromCommonMark replaces the tree with a goldmark-parsed CommonMark
// document.
func (m *MD2Img) FromCommonMark(src []byte) error {
	doc, err := FromCommonMark(src)
	if err != nil {
		return err
	}
	m.root = doc
	return nil
}

// RenderImage renders the document at the given width; height <= 0 sizes
// the canvas to the content.
func (m *MD2Img) RenderImage(width, height int) (*image.RGBA, error) {
	return m.renderer.RenderImage(m.root, width, height)
}

// RenderFile renders the document and writes PNG or JPEG to path by
// extension.
func (m *MD2Img) RenderFile(path string, width, height int) error {
	return m.renderer.RenderFile(m.root, path, width, height)
}

// ---- Shorthand constructors ----

// H1 through H6 build headings at the corresponding level.
func H1(text string) *Heading { return NewHeading(text, 1) }
func H2(text string) *Heading { return NewHeading(text, 2) }
func H3(text string) *Heading { return NewHeading(text, 3) }
func H4(text string) *Heading { return NewHeading(text, 4) }
func H5(text string) *Heading { return NewHeading(text, 5) }
func H6(text string) *Heading { return NewHeading(text, 6) }

// P builds a plain text paragraph.
func P(text string) *Paragraph { return NewParagraphText(text) }

// HR builds a horizontal rule.
func HR() *HorizontalRule { return NewHorizontalRule() }

// BR builds a forced line break.
func BR() *LineBreak { return NewLineBreak() }

// B, I, S and CODE build styled inline spans over a string or Node.
func B(content any) *Bold          { return NewBold(content) }
func I(content any) *Italic        { return NewItalic(content) }
func S(content any) *Strikethrough { return NewStrikethrough(content) }
func CODE(content any) *Code       { return NewCode(content) }

// LI builds a list item over a string or Node.
func LI(content any) *ListItem { return NewListItem(content) }

// UL and OL build lists from strings, ListItems or other nodes.
func UL(items ...any) *List { return buildList(false, items) }
func OL(items ...any) *List { return buildList(true, items) }

func buildList(ordered bool, items []any) *List {
	l := NewList(ordered)
	for _, item := range items {
		l.Add(item)
	}
	return l
}
