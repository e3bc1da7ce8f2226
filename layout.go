package md2img

import (
	"strings"
	"unicode"
)

// ---- Layout engine ----

// cjkRanges covers the ideograph and related punctuation blocks that wrap
// per character instead of per word: U+4E00..9FFF, U+3000..30FF,
// U+FF00..FFEF.
var cjkRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3000, Hi: 0x30FF, Stride: 1},
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1},
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1},
	},
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(cjkRanges, r) {
			return true
		}
	}
	return false
}

// LineItem is one placed fragment and the width it was given.
type LineItem struct {
	Node  Node
	Width int
}

// Line is an ordered run of fragments sharing a baseline row.
type Line struct {
	Items  []LineItem
	Width  int
	Height int
}

// Layout is the line-broken geometry of one paragraph.
type Layout struct {
	Lines  []Line
	Width  int
	Height int
}

// LayoutEngine computes greedy first-fit line breaks for paragraph content.
// It does not attempt minimum-raggedness breaking.
type LayoutEngine struct {
	r *Renderer
}

// LayoutParagraph walks p's inline children in order, packing breakable
// units onto lines until the next unit would overflow availableWidth. Text
// runs containing any CJK character break per character, other text per
// space-delimited word (trailing space stays with the preceding word);
// styled spans are atomic; a LineBreak closes its line after placement. An
// empty paragraph yields zero lines and zero height.
func (e *LayoutEngine) LayoutParagraph(p *Paragraph, availableWidth int) Layout {
	result := Layout{Width: availableWidth}
	if len(p.Children()) == 0 {
		return result
	}

	var line Line
	closeLine := func() {
		result.Lines = append(result.Lines, line)
		result.Height += line.Height
		line = Line{}
	}
	place := func(n Node, w, h int) {
		line.Items = append(line.Items, LineItem{Node: n, Width: w})
		line.Width += w
		if h > line.Height {
			line.Height = h
		}
	}

	face := func() *Face { return e.r.CurrentFace() }

	for _, child := range p.Children() {
		switch n := child.(type) {
		case *TextSpan:
			for _, unit := range splitUnits(n.TextContent()) {
				w := face().Advance(unit)
				h := face().TextHeight(unit)
				if line.Width+w > availableWidth && len(line.Items) > 0 {
					closeLine()
				}
				place(NewTextSpan(unit), w, h)
			}
		case *LineBreak:
			place(n, 0, n.MeasureHeight(e.r, availableWidth))
			closeLine()
		default:
			remaining := availableWidth - line.Width
			w := child.MeasureWidth(e.r, remaining)
			h := child.MeasureHeight(e.r, remaining)
			if line.Width+w > availableWidth && len(line.Items) > 0 {
				closeLine()
				w = child.MeasureWidth(e.r, availableWidth)
				h = child.MeasureHeight(e.r, availableWidth)
			}
			place(child, w, h)
		}
	}
	if len(line.Items) > 0 {
		closeLine()
	}
	return result
}

// splitUnits segments a text run into breakable units. A run containing any
// CJK character segments per character; otherwise per word, each word
// keeping its trailing space.
func splitUnits(s string) []string {
	if s == "" {
		return nil
	}
	if containsCJK(s) {
		units := make([]string, 0, len(s))
		for _, r := range s {
			units = append(units, string(r))
		}
		return units
	}
	parts := strings.SplitAfter(s, " ")
	units := parts[:0]
	for _, p := range parts {
		if p != "" {
			units = append(units, p)
		}
	}
	return units
}
