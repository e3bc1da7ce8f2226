package md2img

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const sampleMarkdown = `# Report

Some **bold** opening text with ~~struck~~ words.

## Details

- first point
- second point

1. step one
2. step two

> a quoted remark
> on two lines

---

Closing line with ` + "`inline code`" + `.`

func TestRenderImageSmoke(t *testing.T) {
	m := New(nil)
	m.FromMarkdown(sampleMarkdown)

	img, err := m.RenderImage(600, 0)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 600 {
		t.Fatalf("image width = %d, want 600", b.Dx())
	}
	if b.Dy() <= 0 {
		t.Fatalf("image height = %d, want > 0", b.Dy())
	}

	// The background fill means no pixel is fully transparent.
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Fatalf("corner pixel is transparent; background not painted")
	}
}

func TestRenderImageDefaultWidth(t *testing.T) {
	m := New(nil)
	m.AddParagraph("hello")
	img, err := m.RenderImage(0, 0)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if img.Bounds().Dx() != 800 {
		t.Fatalf("default width = %d, want 800", img.Bounds().Dx())
	}
}

func TestRenderImageExplicitHeight(t *testing.T) {
	m := New(nil)
	m.AddParagraph("hello")
	img, err := m.RenderImage(400, 120)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if img.Bounds().Dy() != 120 {
		t.Fatalf("explicit height = %d, want 120", img.Bounds().Dy())
	}
}

func TestRenderFilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	m := New(nil)
	m.AddHeading("Title", 1).AddParagraph("body text").AddHorizontalRule()
	if err := m.RenderFile(path, 500, 0); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != 500 {
		t.Fatalf("decoded width = %d, want 500", cfg.Width)
	}
}

func TestRenderFileUnsupportedExtension(t *testing.T) {
	m := New(nil)
	m.AddParagraph("x")
	if err := m.RenderFile(filepath.Join(t.TempDir(), "out.gif"), 300, 0); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestAddInvalidInput(t *testing.T) {
	m := New(nil)
	if err := m.Add(12); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Add(int) err = %v, want ErrInvalidInput", err)
	}
	if err := m.Add("plain string"); err != nil {
		t.Fatalf("Add(string): %v", err)
	}
	if err := m.Add(H2("node")); err != nil {
		t.Fatalf("Add(Node): %v", err)
	}
	if len(m.Root().Children()) != 2 {
		t.Fatalf("document has %d children, want 2", len(m.Root().Children()))
	}
}

func TestDarkModeRender(t *testing.T) {
	m := New(NewConfig().ForDarkMode())
	m.AddHeading("Dark", 1).AddParagraph("light on dark")
	img, err := m.RenderImage(300, 0)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0x12 || g>>8 != 0x12 || b>>8 != 0x12 {
		t.Fatalf("background = %02x%02x%02x, want 121212", r>>8, g>>8, b>>8)
	}
}

func TestShorthandBuilders(t *testing.T) {
	m := New(nil)
	m.Root().
		Add(H1("Title")).
		Add(P("paragraph")).
		Add(NewParagraph(B("bold"), BR(), I("italic"), S("struck"), CODE("mono"))).
		Add(UL("a", "b")).
		Add(OL("one", "two", LI("three"))).
		Add(HR())

	ol := m.Root().Children()[4].(*List)
	if !ol.Ordered() || len(ol.Items()) != 3 {
		t.Fatalf("OL built %d items (ordered=%v), want 3 ordered", len(ol.Items()), ol.Ordered())
	}
	if ol.Items()[2].Index() != 3 {
		t.Fatalf("third item index = %d, want 3", ol.Items()[2].Index())
	}

	if _, err := m.RenderImage(400, 0); err != nil {
		t.Fatalf("render built tree: %v", err)
	}
}

func TestFromMarkdownFileMissing(t *testing.T) {
	m := New(nil)
	err := m.FromMarkdownFile(filepath.Join(t.TempDir(), "absent.md"))
	if !errors.Is(err, ErrMissingResource) {
		t.Fatalf("err = %v, want ErrMissingResource", err)
	}
}
