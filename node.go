package md2img

import (
	"errors"
	"fmt"
)

// Markdown -> raster typesetting engine.
// Goals:
//  - Pure Go (no cgo), bundled fallback fonts
//  - Typed node tree with a measure/render contract per node
//  - Cascading styles via a scoped push/pop stack
//  - Greedy line breaking: word wrap for Latin, per-character for CJK
//  - Export PNG or JPG based on output extension
//
// Not a browser engine; keep expectations practical.

// ---- Errors ----

var (
	// ErrInvalidInput marks an unsupported operand passed to a tree
	// construction operation.
	ErrInvalidInput = errors.New("md2img: invalid input")
	// ErrMissingResource marks an input file that does not exist.
	ErrMissingResource = errors.New("md2img: missing resource")
)

// ---- Node tree ----

// Node is the capability every tree node implements. MeasureWidth and
// MeasureHeight are pure functions of the tree, the width argument and the
// active style; Render walks the same geometry emitting draw calls and
// returns the (width, height) actually used.
type Node interface {
	MeasureWidth(r *Renderer, maxWidth int) int
	MeasureHeight(r *Renderer, availableWidth int) int
	Render(r *Renderer, x, y, availableWidth int) (usedWidth, usedHeight int)
}

// BlockNode is a Node that claims the full line width and owns vertical
// margins. Containers consult the margins while stacking children.
type BlockNode interface {
	Node
	MarginTop() int
	MarginBottom() int
}

// block carries the margins every block variant owns.
type block struct {
	marginTop    int
	marginBottom int
}

func (b *block) MarginTop() int         { return b.marginTop }
func (b *block) MarginBottom() int      { return b.marginBottom }
func (b *block) SetMarginTop(px int)    { b.marginTop = px }
func (b *block) SetMarginBottom(px int) { b.marginBottom = px }

// Document is the root block: no visual box of its own, children stacked
// vertically with their margins.
type Document struct {
	block
	children []Node
}

// NewDocument returns an empty root node.
func NewDocument() *Document { return &Document{} }

// Add appends a child, keeping insertion order.
func (d *Document) Add(n Node) *Document {
	d.children = append(d.children, n)
	return d
}

// Children returns the ordered child sequence.
func (d *Document) Children() []Node { return d.children }

func (d *Document) MeasureWidth(r *Renderer, maxWidth int) int { return maxWidth }

func (d *Document) MeasureHeight(r *Renderer, availableWidth int) int {
	total := 0
	for _, child := range d.children {
		h := child.MeasureHeight(r, availableWidth)
		if b, ok := child.(BlockNode); ok {
			total += b.MarginTop() + h + b.MarginBottom()
		} else {
			total += h
		}
	}
	return total
}

func (d *Document) Render(r *Renderer, x, y, availableWidth int) (int, int) {
	curY := y
	for _, child := range d.children {
		b, isBlock := child.(BlockNode)
		if isBlock {
			curY += b.MarginTop()
		}
		_, usedH := child.Render(r, x, curY, availableWidth)
		curY += usedH
		if isBlock {
			curY += b.MarginBottom()
		}
	}
	return availableWidth, curY - y
}

// ---- Concatenation ----

// Concat joins two operands into a containing node. Strings become
// TextSpans; two ListItems become a List inheriting the left item's
// ordering; a List absorbs ListItems and other Lists; anything else is
// stacked under a fresh Document. Unsupported operand types report
// ErrInvalidInput.
func Concat(a, b any) (Node, error) {
	left, err := concatOperand(a)
	if err != nil {
		return nil, err
	}
	right, err := concatOperand(b)
	if err != nil {
		return nil, err
	}

	switch l := left.(type) {
	case *ListItem:
		if ri, ok := right.(*ListItem); ok {
			list := NewList(l.ordered())
			list.Add(l)
			list.Add(ri)
			return list, nil
		}
	case *List:
		switch rn := right.(type) {
		case *ListItem:
			l.Add(rn)
			return l, nil
		case *List:
			for _, item := range rn.items {
				l.Add(item)
			}
			return l, nil
		}
	}

	doc := NewDocument()
	doc.Add(left)
	doc.Add(right)
	return doc, nil
}

func concatOperand(v any) (Node, error) {
	switch n := v.(type) {
	case Node:
		return n, nil
	case string:
		return NewTextSpan(n), nil
	default:
		return nil, fmt.Errorf("%w: cannot concatenate %T", ErrInvalidInput, v)
	}
}
