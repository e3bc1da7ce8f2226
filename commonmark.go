package md2img

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ---- CommonMark importer ----

// FromCommonMark parses src as CommonMark (with GFM strikethrough) through
// goldmark and converts the AST into this engine's node tree. It is the
// alternate construction path for documents written in the standard
// dialect; constructs without a native node (links, images, tables) are
// flattened to their text.
func FromCommonMark(src []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := md.Parser().Parse(text.NewReader(src))
	doc := NewDocument()
	convertBlocks(doc, root, src)
	return doc, nil
}

func convertBlocks(doc *Document, parent ast.Node, src []byte) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			doc.Add(NewHeading(strings.TrimSpace(string(n.Text(src))), n.Level))
		case *ast.Paragraph, *ast.TextBlock:
			if p := convertParagraph(child, src); len(p.Children()) > 0 {
				doc.Add(p)
			}
		case *ast.ThematicBreak:
			doc.Add(NewHorizontalRule())
		case *ast.List:
			doc.Add(convertList(n, src))
		case *ast.Blockquote:
			inner := NewDocument()
			convertBlocks(inner, n, src)
			doc.Add(NewBlockquote(inner))
		case *ast.CodeBlock:
			doc.Add(convertCodeBlock(child, src))
		case *ast.FencedCodeBlock:
			doc.Add(convertCodeBlock(child, src))
		default:
			if txt := strings.TrimSpace(string(child.Text(src))); txt != "" {
				doc.Add(NewParagraphText(txt))
			}
		}
	}
}

func convertList(list *ast.List, src []byte) *List {
	out := NewList(list.IsOrdered())
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		entry := NewListItem(nil)
		for block := li.FirstChild(); block != nil; block = block.NextSibling() {
			switch b := block.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				for _, n := range convertInlines(block, src) {
					entry.Add(n)
				}
			case *ast.List:
				entry.Add(convertList(b, src))
			default:
				if txt := strings.TrimSpace(string(block.Text(src))); txt != "" {
					entry.Add(NewTextSpan(txt))
				}
			}
		}
		out.Add(entry)
	}
	return out
}

func convertParagraph(n ast.Node, src []byte) *Paragraph {
	return NewParagraph(convertInlines(n, src)...)
}

// convertCodeBlock maps a code block onto a paragraph of per-line code
// spans; the engine has no block-level code node.
func convertCodeBlock(n ast.Node, src []byte) *Paragraph {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	p := NewParagraph()
	raw := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	for i, line := range raw {
		p.Add(NewCode(line))
		if i < len(raw)-1 {
			p.Add(NewLineBreak())
		}
	}
	return p
}

func convertInlines(parent ast.Node, src []byte) []Node {
	var out []Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if v := string(n.Segment.Value(src)); v != "" {
				out = append(out, NewTextSpan(v))
			}
			if n.SoftLineBreak() || n.HardLineBreak() {
				out = append(out, NewLineBreak())
			}
		case *ast.Emphasis:
			inner := wrapInlines(convertInlines(n, src))
			if n.Level >= 2 {
				out = append(out, NewBold(inner))
			} else {
				out = append(out, NewItalic(inner))
			}
		case *ast.CodeSpan:
			out = append(out, NewCode(string(n.Text(src))))
		case *extast.Strikethrough:
			out = append(out, NewStrikethrough(wrapInlines(convertInlines(n, src))))
		default:
			if child.HasChildren() {
				out = append(out, convertInlines(child, src)...)
			} else if txt := string(child.Text(src)); txt != "" {
				out = append(out, NewTextSpan(txt))
			}
		}
	}
	return out
}

// wrapInlines reduces a converted inline sequence to a single node for a
// styled wrapper's content slot.
func wrapInlines(nodes []Node) Node {
	switch len(nodes) {
	case 0:
		return NewTextSpan("")
	case 1:
		return nodes[0]
	}
	// Multiple children: join literal text; nested styling inside a span
	// is flattened.
	var sb strings.Builder
	for _, n := range nodes {
		if in, ok := n.(InlineNode); ok {
			sb.WriteString(in.TextContent())
		}
	}
	return NewTextSpan(sb.String())
}
