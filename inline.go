package md2img

import "image"

// ---- Inline nodes ----

// InlineNode flows within a line and can report its literal text content
// for segmentation by the layout engine.
type InlineNode interface {
	Node
	TextContent() string
}

// TextSpan is a literal run of text rendered in the current style.
type TextSpan struct {
	text string
}

// NewTextSpan wraps text in an inline node.
func NewTextSpan(text string) *TextSpan { return &TextSpan{text: text} }

func (t *TextSpan) TextContent() string { return t.text }

func (t *TextSpan) MeasureWidth(r *Renderer, maxWidth int) int {
	return r.CurrentFace().Advance(t.text)
}

func (t *TextSpan) MeasureHeight(r *Renderer, availableWidth int) int {
	return r.CurrentFace().TextHeight(t.text)
}

func (t *TextSpan) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	face := r.CurrentFace()
	style := r.CurrentStyle()
	r.Surface().Text(x, y, t.text, face, style.Color)
	return face.Advance(t.text), face.TextHeight(t.text)
}

// LineBreak is a zero-width node that forces the layout engine to close
// the current line; its height is the current line height.
type LineBreak struct{}

// NewLineBreak returns a forced break node.
func NewLineBreak() *LineBreak { return &LineBreak{} }

func (l *LineBreak) TextContent() string { return "\n" }

func (l *LineBreak) MeasureWidth(r *Renderer, maxWidth int) int { return 0 }

func (l *LineBreak) MeasureHeight(r *Renderer, availableWidth int) int {
	return r.CurrentFace().TextHeight("X")
}

func (l *LineBreak) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	return 0, l.MeasureHeight(r, availableWidth)
}

// styledText is the shared body of the style-wrapping inline variants. The
// override record it contributes is scoped to measuring/rendering its own
// subtree and never leaks to siblings.
type styledText struct {
	children []Node
	override StyleOverride
}

func newStyledText(content any, override StyleOverride) styledText {
	s := styledText{override: override}
	switch c := content.(type) {
	case string:
		s.children = []Node{NewTextSpan(c)}
	case Node:
		s.children = []Node{c}
	}
	return s
}

// Overrides returns the style record this node layers for its subtree.
func (s *styledText) Overrides() StyleOverride { return s.override }

// Children returns the wrapped content.
func (s *styledText) Children() []Node { return s.children }

// Add appends another child.
func (s *styledText) Add(n Node) { s.children = append(s.children, n) }

func (s *styledText) TextContent() string {
	out := ""
	for _, child := range s.children {
		if in, ok := child.(InlineNode); ok {
			out += in.TextContent()
		}
	}
	return out
}

func (s *styledText) MeasureWidth(r *Renderer, maxWidth int) int {
	defer r.PushStyle(s.override)()
	total := 0
	for _, child := range s.children {
		total += child.MeasureWidth(r, maxWidth-total)
	}
	return total
}

func (s *styledText) MeasureHeight(r *Renderer, availableWidth int) int {
	defer r.PushStyle(s.override)()
	maxH := 0
	remaining := availableWidth
	for _, child := range s.children {
		w := child.MeasureWidth(r, remaining)
		if h := child.MeasureHeight(r, remaining); h > maxH {
			maxH = h
		}
		remaining -= w
	}
	return maxH
}

func (s *styledText) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	defer r.PushStyle(s.override)()
	curX := x
	maxH := 0
	for _, child := range s.children {
		w, h := child.Render(r, curX, y, availableWidth-(curX-x))
		curX += w
		if h > maxH {
			maxH = h
		}
	}
	return curX - x, maxH
}

// Bold renders its content with a bold font weight.
type Bold struct{ styledText }

// NewBold wraps content (string or Node) in a bold span.
func NewBold(content any) *Bold {
	return &Bold{newStyledText(content, StyleOverride{FontWeight: ref(WeightBold)})}
}

// Italic renders its content with an italic font style.
type Italic struct{ styledText }

// NewItalic wraps content (string or Node) in an italic span.
func NewItalic(content any) *Italic {
	return &Italic{newStyledText(content, StyleOverride{FontStyle: ref(StyleItalic)})}
}

// Code renders its content in the monospace family over a padded, rounded
// background box.
type Code struct{ styledText }

// NewCode wraps content (string or Node) in an inline code span.
func NewCode(content any) *Code {
	return &Code{newStyledText(content, StyleOverride{
		FontFamily:      ref(FamilyMonospace),
		BackgroundColor: ref(mustHex("#f0f0f0")),
		Padding:         ref(Inset{Top: 2, Right: 4, Bottom: 2, Left: 4}),
		BorderRadius:    ref(3),
	})}
}

func (c *Code) contentSize(r *Renderer, availableWidth int) (int, int) {
	return c.styledText.MeasureWidth(r, availableWidth),
		c.styledText.MeasureHeight(r, availableWidth)
}

func (c *Code) MeasureWidth(r *Renderer, maxWidth int) int {
	pad := *c.override.Padding
	return c.styledText.MeasureWidth(r, maxWidth) + pad.Left + pad.Right
}

func (c *Code) MeasureHeight(r *Renderer, availableWidth int) int {
	pad := *c.override.Padding
	return c.styledText.MeasureHeight(r, availableWidth) + pad.Top + pad.Bottom
}

func (c *Code) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	pad := *c.override.Padding
	contentW, contentH := c.contentSize(r, availableWidth)
	bgW := contentW + pad.Left + pad.Right
	bgH := contentH + pad.Top + pad.Bottom

	rect := image.Rect(x, y, x+bgW, y+bgH)
	r.Surface().RoundedRect(rect, *c.override.BackgroundColor, *c.override.BorderRadius)

	func() {
		defer r.PushStyle(c.override)()
		curX := x + pad.Left
		for _, child := range c.children {
			w, _ := child.Render(r, curX, y+pad.Top, availableWidth-pad.Left-pad.Right)
			curX += w
		}
	}()
	return bgW, bgH
}

// Strikethrough renders its content, then one continuous line across the
// accumulated width at vertical mid-height.
type Strikethrough struct{ styledText }

// NewStrikethrough wraps content (string or Node) in a struck-out span.
func NewStrikethrough(content any) *Strikethrough {
	return &Strikethrough{newStyledText(content, StyleOverride{})}
}

func (s *Strikethrough) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	totalW := 0
	maxH := 0
	curX := x
	for _, child := range s.children {
		w, h := func() (int, int) {
			defer r.PushStyle(s.override)()
			return child.Render(r, curX, y, availableWidth-totalW)
		}()
		curX += w
		totalW += w
		if h > maxH {
			maxH = h
		}
	}
	if totalW > 0 && maxH > 0 {
		lineY := y + maxH/2
		r.Surface().Line(x, lineY, x+totalW, lineY, r.CurrentStyle().Color, 1)
	}
	return totalW, maxH
}
