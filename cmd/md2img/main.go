package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/md2img/md2img"
)

func main() {
	in := flag.String("in", "", "Input Markdown file (default: stdin if empty)")
	out := flag.String("out", "out.png", "Output image file (.png or .jpg)")
	width := flag.Int("width", 800, "Output image width in pixels")
	pt := flag.Int("pt", 0, "Base font size in pixels (0: config default)")
	theme := flag.String("theme", "light", "Theme: light|dark")
	fontDir := flag.String("fontdir", "", "Extra directory to search for font files")
	dialect := flag.String("dialect", "basic", "Markdown dialect: basic|commonmark")
	flag.Parse()

	cfg := md2img.NewConfig()
	switch *theme {
	case "light", "":
	case "dark":
		cfg.ForDarkMode()
	default:
		fatal(errors.New("unknown theme: " + *theme))
	}
	if *pt > 0 {
		cfg.SetGlobalStyle(md2img.StyleOverride{FontSize: pt})
	}

	m := md2img.New(cfg)
	if *fontDir != "" {
		m.Renderer().Fonts().AddFontPath(*fontDir)
	}

	var data []byte
	var err error
	if *in == "" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			fatal(err)
		}
	} else {
		data, err = os.ReadFile(*in)
		if err != nil {
			fatal(err)
		}
	}

	switch *dialect {
	case "basic", "":
		m.FromMarkdown(string(data))
	case "commonmark":
		if err := m.FromCommonMark(data); err != nil {
			fatal(err)
		}
	default:
		fatal(errors.New("unknown dialect: " + *dialect))
	}

	if err := m.RenderFile(*out, *width, 0); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("md2img: " + err.Error() + "\n")
	os.Exit(1)
}
