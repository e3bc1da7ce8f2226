package md2img

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseHeadingAndBoldParagraph(t *testing.T) {
	doc := Parse("# Title\n\nHello **world**")
	if got := len(doc.Children()); got != 2 {
		t.Fatalf("expected 2 top-level blocks, got %d", got)
	}

	h, ok := doc.Children()[0].(*Heading)
	if !ok {
		t.Fatalf("expected first block to be a Heading, got %T", doc.Children()[0])
	}
	if h.Level() != 1 || h.Text() != "Title" {
		t.Fatalf("expected h1 %q, got h%d %q", "Title", h.Level(), h.Text())
	}

	p, ok := doc.Children()[1].(*Paragraph)
	if !ok {
		t.Fatalf("expected second block to be a Paragraph, got %T", doc.Children()[1])
	}
	if got := len(p.Children()); got != 2 {
		t.Fatalf("expected 2 inline children, got %d", got)
	}
	span, ok := p.Children()[0].(*TextSpan)
	if !ok {
		t.Fatalf("expected TextSpan, got %T", p.Children()[0])
	}
	if span.TextContent() != "Hello " {
		t.Fatalf("expected TextSpan %q, got %q", "Hello ", span.TextContent())
	}
	bold, ok := p.Children()[1].(*Bold)
	if !ok {
		t.Fatalf("expected Bold, got %T", p.Children()[1])
	}
	want := StyleOverride{FontWeight: ref(WeightBold)}
	if !reflect.DeepEqual(bold.Overrides(), want) {
		t.Fatalf("bold override = %+v, want font weight bold only", bold.Overrides())
	}
}

func TestParseHorizontalRules(t *testing.T) {
	for _, src := range []string{"---", "***", "___", "- - -", "* * *"} {
		t.Run(src, func(t *testing.T) {
			doc := Parse(src)
			if len(doc.Children()) != 1 {
				t.Fatalf("expected a single block, got %d", len(doc.Children()))
			}
			if _, ok := doc.Children()[0].(*HorizontalRule); !ok {
				t.Fatalf("expected HorizontalRule, got %T", doc.Children()[0])
			}
		})
	}
}

func TestParseOrderedListRenumbers(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
	}{
		{"sequential markers", "1. a\n2. b"},
		{"gapped markers", "1. a\n5. b"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.src)
			if len(doc.Children()) != 1 {
				t.Fatalf("expected a single list, got %d blocks", len(doc.Children()))
			}
			list, ok := doc.Children()[0].(*List)
			if !ok {
				t.Fatalf("expected List, got %T", doc.Children()[0])
			}
			if !list.Ordered() {
				t.Fatalf("expected an ordered list")
			}
			var got []int
			for _, item := range list.Items() {
				got = append(got, item.Index())
			}
			if !reflect.DeepEqual(got, []int{1, 2}) {
				t.Fatalf("item indices = %v, want [1 2]", got)
			}
		})
	}
}

func TestParseListContinuationLines(t *testing.T) {
	doc := Parse("- first\n    extra content\n- second")
	list, ok := doc.Children()[0].(*List)
	if !ok {
		t.Fatalf("expected List, got %T", doc.Children()[0])
	}
	if len(list.Items()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items()))
	}
	if got := len(list.Items()[0].children); got != 2 {
		t.Fatalf("expected continuation to attach to first item, got %d children", got)
	}
}

func TestParseBlockquoteGroupsLines(t *testing.T) {
	doc := Parse("> first line\n> second line\n\nafter")
	if len(doc.Children()) != 2 {
		t.Fatalf("expected quote + paragraph, got %d blocks", len(doc.Children()))
	}
	bq, ok := doc.Children()[0].(*Blockquote)
	if !ok {
		t.Fatalf("expected Blockquote, got %T", doc.Children()[0])
	}
	inner, ok := bq.children[0].(*Document)
	if !ok {
		t.Fatalf("expected nested Document, got %T", bq.children[0])
	}
	p, ok := inner.Children()[0].(*Paragraph)
	if !ok {
		t.Fatalf("expected nested Paragraph, got %T", inner.Children()[0])
	}
	// Two quoted lines merge into one paragraph with a forced break.
	if got := len(p.Children()); got != 3 {
		t.Fatalf("expected span+break+span, got %d children", got)
	}
	if _, ok := p.Children()[1].(*LineBreak); !ok {
		t.Fatalf("expected LineBreak between quoted lines, got %T", p.Children()[1])
	}
}

func TestParseParagraphMergesLines(t *testing.T) {
	doc := Parse("line one\nline two\n\nline three")
	if len(doc.Children()) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Children()))
	}
	p := doc.Children()[0].(*Paragraph)
	if got := len(p.Children()); got != 3 {
		t.Fatalf("expected span+break+span, got %d", got)
	}
}

func TestParseInlinePrecedence(t *testing.T) {
	t.Run("code wins over bold", func(t *testing.T) {
		nodes := parseInline("`**bold**`")
		if len(nodes) != 1 {
			t.Fatalf("expected single node, got %d", len(nodes))
		}
		code, ok := nodes[0].(*Code)
		if !ok {
			t.Fatalf("expected Code, got %T", nodes[0])
		}
		if code.TextContent() != "**bold**" {
			t.Fatalf("code content = %q, want literal markers", code.TextContent())
		}
	})

	t.Run("strikethrough before bold", func(t *testing.T) {
		nodes := parseInline("~~gone~~ and **kept**")
		if len(nodes) != 3 {
			t.Fatalf("expected 3 nodes, got %d", len(nodes))
		}
		if _, ok := nodes[0].(*Strikethrough); !ok {
			t.Fatalf("expected Strikethrough first, got %T", nodes[0])
		}
		if _, ok := nodes[2].(*Bold); !ok {
			t.Fatalf("expected Bold in remainder, got %T", nodes[2])
		}
	})

	t.Run("underscore variants", func(t *testing.T) {
		nodes := parseInline("__bold__ _italic_")
		if _, ok := nodes[0].(*Bold); !ok {
			t.Fatalf("expected Bold, got %T", nodes[0])
		}
		if _, ok := nodes[2].(*Italic); !ok {
			t.Fatalf("expected Italic, got %T", nodes[2])
		}
	})
}

func TestParseUnterminatedMarkerDegrades(t *testing.T) {
	nodes := parseInline("`code without end")
	if len(nodes) != 1 {
		t.Fatalf("expected single literal node, got %d", len(nodes))
	}
	span, ok := nodes[0].(*TextSpan)
	if !ok {
		t.Fatalf("expected TextSpan, got %T", nodes[0])
	}
	if span.TextContent() != "`code without end" {
		t.Fatalf("expected literal text, got %q", span.TextContent())
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.md"))
	if !errors.Is(err, ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
}
