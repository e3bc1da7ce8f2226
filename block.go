package md2img

import (
	"image"
	"strconv"
)

// ---- Block nodes ----

// Heading is a single line of text at one of six levels. It never wraps.
type Heading struct {
	block
	text  string
	level int
}

// NewHeading clamps level into 1..6.
func NewHeading(text string, level int) *Heading {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	h := &Heading{text: text, level: level}
	h.marginTop = 20 - level*2
	h.marginBottom = 10
	return h
}

// Text returns the heading's literal text.
func (h *Heading) Text() string { return h.text }

// Level returns the heading level, 1..6.
func (h *Heading) Level() int { return h.level }

func (h *Heading) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (h *Heading) MeasureHeight(r *Renderer, availableWidth int) int {
	return r.HeadingFace(h.level).TextHeight(h.text)
}

func (h *Heading) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	face := r.HeadingFace(h.level)
	style := r.HeadingStyle(h.level)
	r.Surface().Text(x, y, h.text, face, style.Color)
	x0, y0, x1, y1 := face.Bounds(h.text)
	return x1 - x0, y1 - y0
}

// Paragraph is an inline-flow container; all geometry comes from the
// layout engine.
type Paragraph struct {
	block
	children []Node
}

// NewParagraph builds a paragraph over the given inline children.
func NewParagraph(children ...Node) *Paragraph {
	p := &Paragraph{children: children}
	p.marginTop = 8
	p.marginBottom = 8
	return p
}

// NewParagraphText builds a paragraph holding a single text span.
func NewParagraphText(text string) *Paragraph {
	return NewParagraph(NewTextSpan(text))
}

// Add appends an inline child.
func (p *Paragraph) Add(n Node) *Paragraph {
	p.children = append(p.children, n)
	return p
}

// Children returns the ordered inline children.
func (p *Paragraph) Children() []Node { return p.children }

func (p *Paragraph) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (p *Paragraph) MeasureHeight(r *Renderer, availableWidth int) int {
	return r.Layout().LayoutParagraph(p, availableWidth).Height
}

func (p *Paragraph) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	layout := r.Layout().LayoutParagraph(p, availableWidth)
	curY := y
	maxW := 0
	for _, line := range layout.Lines {
		curX := x
		for _, item := range line.Items {
			w, _ := item.Node.Render(r, curX, curY, item.Width)
			curX += w
		}
		curY += line.Height
		if line.Width > maxW {
			maxW = line.Width
		}
	}
	return maxW, curY - y
}

// HorizontalRule is a fixed-height divider spanning the available width.
type HorizontalRule struct {
	block
	height int
}

// NewHorizontalRule returns a 1px divider.
func NewHorizontalRule() *HorizontalRule {
	hr := &HorizontalRule{height: 1}
	hr.marginTop = 15
	hr.marginBottom = 15
	return hr
}

func (hr *HorizontalRule) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (hr *HorizontalRule) MeasureHeight(r *Renderer, availableWidth int) int {
	return hr.height
}

func (hr *HorizontalRule) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	color := r.StyleFor("hr").Color
	r.Surface().Line(x, y, x+availableWidth, y, color, hr.height)
	return availableWidth, hr.height
}

// ListItem is one entry of a List: a reserved marker column, then content.
// index is 1-based for items owned by an ordered list and 0 otherwise; the
// owning List rewrites it on every insertion.
type ListItem struct {
	block
	index       int
	indent      int
	markerWidth int
	children    []Node
}

// NewListItem builds an item over content (string or Node). content may be
// nil for an empty item.
func NewListItem(content any) *ListItem {
	li := &ListItem{indent: 24, markerWidth: 16}
	li.marginTop = 4
	li.marginBottom = 4
	switch c := content.(type) {
	case string:
		li.Add(NewTextSpan(c))
	case Node:
		li.Add(c)
	}
	return li
}

// Add appends content to the item.
func (li *ListItem) Add(n Node) *ListItem {
	li.children = append(li.children, n)
	return li
}

// Index returns the item's 1-based ordinal, or 0 when unordered.
func (li *ListItem) Index() int { return li.index }

func (li *ListItem) ordered() bool { return li.index > 0 }

func (li *ListItem) marker() string {
	if li.index > 0 {
		return strconv.Itoa(li.index) + "."
	}
	return "•"
}

func (li *ListItem) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (li *ListItem) MeasureHeight(r *Renderer, availableWidth int) int {
	contentWidth := availableWidth - li.indent - li.markerWidth
	total := 0
	for _, child := range li.children {
		total += child.MeasureHeight(r, contentWidth)
	}
	return total
}

func (li *ListItem) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	markerX := x + li.indent
	contentX := markerX + li.markerWidth
	contentWidth := availableWidth - li.indent - li.markerWidth

	face := r.CurrentFace()
	style := r.CurrentStyle()
	r.Surface().Text(markerX, y, li.marker(), face, style.Color)

	curY := y
	for _, child := range li.children {
		_, h := child.Render(r, contentX, curY, contentWidth)
		curY += h
	}
	return availableWidth, curY - y
}

// List stacks ListItems vertically. An ordered list rewrites every item's
// index to its sequential 1..N position on each insertion or removal, so
// indices are never preserved across re-parenting.
type List struct {
	block
	isOrdered bool
	items     []*ListItem
}

// NewList returns an empty ordered or unordered list.
func NewList(ordered bool) *List {
	l := &List{isOrdered: ordered}
	l.marginTop = 10
	l.marginBottom = 10
	return l
}

// Ordered reports whether the list numbers its items.
func (l *List) Ordered() bool { return l.isOrdered }

// Items returns the current item sequence.
func (l *List) Items() []*ListItem { return l.items }

// Add appends content as a ListItem, wrapping strings and non-item nodes,
// then renumbers.
func (l *List) Add(content any) *List {
	item, ok := content.(*ListItem)
	if !ok {
		item = NewListItem(content)
	}
	l.items = append(l.items, item)
	l.renumber()
	return l
}

// Remove deletes the item at position i (0-based) and renumbers the rest.
func (l *List) Remove(i int) *List {
	if i < 0 || i >= len(l.items) {
		return l
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.renumber()
	return l
}

func (l *List) renumber() {
	for i, item := range l.items {
		if l.isOrdered {
			item.index = i + 1
		} else {
			item.index = 0
		}
	}
}

func (l *List) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (l *List) MeasureHeight(r *Renderer, availableWidth int) int {
	total := 0
	for _, item := range l.items {
		total += item.MarginTop() + item.MeasureHeight(r, availableWidth) + item.MarginBottom()
	}
	return total
}

func (l *List) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	curY := y
	for _, item := range l.items {
		curY += item.MarginTop()
		_, h := item.Render(r, x, curY, availableWidth)
		curY += h + item.MarginBottom()
	}
	return availableWidth, curY - y
}

// Blockquote indents its content behind a left border bar over a tinted
// background, rendering children with a muted text color.
type Blockquote struct {
	block
	paddingLeft int
	borderWidth int
	children    []Node
}

// NewBlockquote builds a quote over content (string or Node), nil for empty.
func NewBlockquote(content any) *Blockquote {
	bq := &Blockquote{paddingLeft: 20, borderWidth: 4}
	bq.marginTop = 15
	bq.marginBottom = 15
	switch c := content.(type) {
	case string:
		bq.Add(NewTextSpan(c))
	case Node:
		bq.Add(c)
	}
	return bq
}

// Add appends content to the quote.
func (bq *Blockquote) Add(n Node) *Blockquote {
	bq.children = append(bq.children, n)
	return bq
}

func (bq *Blockquote) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (bq *Blockquote) MeasureHeight(r *Renderer, availableWidth int) int {
	contentWidth := availableWidth - bq.paddingLeft - bq.borderWidth
	total := 0
	for _, child := range bq.children {
		h := child.MeasureHeight(r, contentWidth)
		if b, ok := child.(BlockNode); ok {
			total += b.MarginTop() + h + b.MarginBottom()
		} else {
			total += h
		}
	}
	return total
}

func (bq *Blockquote) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	// The background and border bar are sized to the measured height and
	// painted before any child.
	height := bq.MeasureHeight(r, availableWidth)
	r.Surface().FillRect(image.Rect(x, y, x+availableWidth, y+height), mustHex("#f9f9f9"))
	r.Surface().FillRect(image.Rect(x, y, x+bq.borderWidth, y+height), mustHex("#cccccc"))

	contentX := x + bq.paddingLeft + bq.borderWidth
	contentWidth := availableWidth - bq.paddingLeft - bq.borderWidth

	curY := y
	defer r.PushStyle(StyleOverride{Color: ref(mustHex("#555555"))})()
	for _, child := range bq.children {
		b, isBlock := child.(BlockNode)
		if isBlock {
			curY += b.MarginTop()
		}
		_, h := child.Render(r, contentX, curY, contentWidth)
		curY += h
		if isBlock {
			curY += b.MarginBottom()
		}
	}
	return availableWidth, curY - y
}
