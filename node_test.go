package md2img

import (
	"errors"
	"testing"
)

func TestListRenumberOnAdd(t *testing.T) {
	l := NewList(true)
	l.Add("a").Add("b").Add("c")
	for i, item := range l.Items() {
		if item.Index() != i+1 {
			t.Fatalf("item %d has index %d, want %d", i, item.Index(), i+1)
		}
	}
}

func TestListRenumberOnRemove(t *testing.T) {
	l := NewList(true)
	l.Add("A").Add("B").Add("C")
	l.Remove(1)
	if len(l.Items()) != 2 {
		t.Fatalf("expected 2 items after remove, got %d", len(l.Items()))
	}
	if l.Items()[0].Index() != 1 || l.Items()[1].Index() != 2 {
		t.Fatalf("indices after remove = [%d %d], want [1 2]",
			l.Items()[0].Index(), l.Items()[1].Index())
	}
	// Out-of-range removals are ignored.
	l.Remove(7)
	l.Remove(-1)
	if len(l.Items()) != 2 {
		t.Fatalf("out-of-range remove changed the list")
	}
}

func TestUnorderedListClearsIndices(t *testing.T) {
	l := NewList(false)
	item := NewListItem("x")
	item.index = 5
	l.Add(item)
	if item.Index() != 0 {
		t.Fatalf("unordered list should zero indices, got %d", item.Index())
	}
}

func TestListIndexNotPreservedAcrossReparenting(t *testing.T) {
	src := NewList(true)
	src.Add("a").Add("b").Add("c")
	third := src.Items()[2]
	if third.Index() != 3 {
		t.Fatalf("precondition: third item index = %d", third.Index())
	}

	dst := NewList(true)
	dst.Add(third)
	if third.Index() != 1 {
		t.Fatalf("re-parented item should renumber to 1, got %d", third.Index())
	}
}

func TestConcatListItems(t *testing.T) {
	a := NewListItem("a")
	b := NewListItem("b")
	n, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	l, ok := n.(*List)
	if !ok {
		t.Fatalf("Concat(item, item) = %T, want *List", n)
	}
	if l.Ordered() {
		t.Fatalf("two unordered items should form an unordered list")
	}
	if len(l.Items()) != 2 {
		t.Fatalf("list has %d items, want 2", len(l.Items()))
	}
}

func TestConcatListAbsorbsItemAndList(t *testing.T) {
	l := NewList(true)
	l.Add("a")

	n, err := Concat(l, NewListItem("b"))
	if err != nil {
		t.Fatalf("Concat(list, item): %v", err)
	}
	if got, ok := n.(*List); !ok || got != l {
		t.Fatalf("list should absorb the item in place, got %T", n)
	}
	if got := l.Items()[1].Index(); got != 2 {
		t.Fatalf("absorbed item index = %d, want 2", got)
	}

	other := NewList(true)
	other.Add("c").Add("d")
	n, err = Concat(l, other)
	if err != nil {
		t.Fatalf("Concat(list, list): %v", err)
	}
	merged := n.(*List)
	if len(merged.Items()) != 4 {
		t.Fatalf("merged list has %d items, want 4", len(merged.Items()))
	}
	if merged.Items()[3].Index() != 4 {
		t.Fatalf("merged items not renumbered: %d", merged.Items()[3].Index())
	}
}

func TestConcatStringsAndFallback(t *testing.T) {
	n, err := Concat("hello ", "world")
	if err != nil {
		t.Fatalf("Concat strings: %v", err)
	}
	doc, ok := n.(*Document)
	if !ok {
		t.Fatalf("Concat(strings) = %T, want *Document", n)
	}
	if len(doc.Children()) != 2 {
		t.Fatalf("document has %d children, want 2", len(doc.Children()))
	}
	if span, ok := doc.Children()[0].(*TextSpan); !ok || span.TextContent() != "hello " {
		t.Fatalf("left operand not converted to a text span")
	}
}

func TestConcatInvalidOperand(t *testing.T) {
	if _, err := Concat(42, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Concat(int, string) err = %v, want ErrInvalidInput", err)
	}
	if _, err := Concat("x", 3.14); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Concat(string, float) err = %v, want ErrInvalidInput", err)
	}
}

func TestDocumentStacksBlockMargins(t *testing.T) {
	r := NewRenderer(NewConfig())
	doc := NewDocument()
	hr1 := NewHorizontalRule()
	hr2 := NewHorizontalRule()
	doc.Add(hr1).Add(hr2)

	want := hr1.MarginTop() + 1 + hr1.MarginBottom() + hr2.MarginTop() + 1 + hr2.MarginBottom()
	if got := doc.MeasureHeight(r, 400); got != want {
		t.Fatalf("document height = %d, want %d", got, want)
	}
}

func TestHeadingLevelClamped(t *testing.T) {
	if NewHeading("x", 0).Level() != 1 {
		t.Fatalf("level 0 should clamp to 1")
	}
	if NewHeading("x", 9).Level() != 6 {
		t.Fatalf("level 9 should clamp to 6")
	}
}
