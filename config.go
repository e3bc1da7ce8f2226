package md2img

import "fmt"

// ---- Style configuration ----

// Config holds the global style plus per-type overrides. StyleFor merges a
// type's override on top of the global record, so global keys only fill the
// gaps a type leaves unset.
type Config struct {
	global Style
	styles map[string]StyleOverride
}

// NewConfig returns the default style table: white page, dark text, 14px
// regular body font, bold shrinking headings h1..h6.
func NewConfig() *Config {
	c := &Config{
		global: Style{
			BackgroundColor: mustHex("#FFFFFF"),
			Color:           mustHex("#000000"),
			FontFamily:      FamilyRegular,
			FontSize:        14,
			FontWeight:      WeightRegular,
			FontStyle:       StyleRegular,
			LineHeight:      1.5,
			Padding:         Inset{Top: 20, Right: 20, Bottom: 20, Left: 20},
		},
		styles: map[string]StyleOverride{
			"paragraph": {LineHeight: ref(1.6), MarginBottom: ref(10)},
			"bold":      {FontWeight: ref(WeightBold)},
			"italic":    {FontStyle: ref(StyleItalic)},
			"code": {
				FontFamily:      ref(FamilyMonospace),
				BackgroundColor: ref(mustHex("#f5f5f5")),
				Padding:         ref(Inset{Top: 2, Right: 4, Bottom: 2, Left: 4}),
				BorderRadius:    ref(3),
			},
			"hr": {Color: ref(mustHex("#cccccc"))},
		},
	}
	headingColors := []string{"#000000", "#222222", "#333333", "#444444", "#555555", "#666666"}
	headingSizes := []int{32, 28, 24, 20, 18, 16}
	for level := 1; level <= 6; level++ {
		c.styles[fmt.Sprintf("h%d", level)] = StyleOverride{
			FontSize:     ref(headingSizes[level-1]),
			FontWeight:   ref(WeightBold),
			Color:        ref(mustHex(headingColors[level-1])),
			MarginBottom: ref(16 - (level-1)*2),
		}
	}
	return c
}

// StyleFor resolves the named type style merged over the global defaults.
// Unknown names resolve to the global style.
func (c *Config) StyleFor(name string) Style {
	if name == "global" {
		return c.global
	}
	if o, ok := c.styles[name]; ok {
		return c.global.Apply(o)
	}
	return c.global
}

// Global returns the fully resolved global style.
func (c *Config) Global() Style { return c.global }

// UpdateStyle layers o onto the named type style.
func (c *Config) UpdateStyle(name string, o StyleOverride) *Config {
	if name == "global" {
		return c.SetGlobalStyle(o)
	}
	c.styles[name] = c.styles[name].merge(o)
	return c
}

// SetGlobalStyle applies o to the global defaults.
func (c *Config) SetGlobalStyle(o StyleOverride) *Config {
	c.global = c.global.Apply(o)
	return c
}

// ForDarkMode flips the table to light-on-dark colors.
func (c *Config) ForDarkMode() *Config {
	c.SetGlobalStyle(StyleOverride{
		BackgroundColor: ref(mustHex("#121212")),
		Color:           ref(mustHex("#FFFFFF")),
	})
	darkHeadings := []string{"#FFFFFF", "#EEEEEE", "#DDDDDD", "#CCCCCC", "#BBBBBB", "#AAAAAA"}
	for level := 1; level <= 6; level++ {
		c.UpdateStyle(fmt.Sprintf("h%d", level), StyleOverride{Color: ref(mustHex(darkHeadings[level-1]))})
	}
	c.UpdateStyle("code", StyleOverride{BackgroundColor: ref(mustHex("#2d2d2d"))})
	c.UpdateStyle("hr", StyleOverride{Color: ref(mustHex("#444444"))})
	return c
}

// WithFont sets the global font family and, when size > 0, the base size.
func (c *Config) WithFont(family string, size int) *Config {
	o := StyleOverride{FontFamily: ref(family)}
	if size > 0 {
		o.FontSize = ref(size)
	}
	return c.SetGlobalStyle(o)
}

// WithHeadingFont sets the family for every heading level at once.
func (c *Config) WithHeadingFont(family string) *Config {
	for level := 1; level <= 6; level++ {
		c.UpdateStyle(fmt.Sprintf("h%d", level), StyleOverride{FontFamily: ref(family)})
	}
	return c
}

// ChineseFriendly returns a config with larger sizes and looser line height
// suited to CJK body text.
func ChineseFriendly() *Config {
	c := NewConfig()
	c.SetGlobalStyle(StyleOverride{FontSize: ref(16), LineHeight: ref(1.8)})
	for level, size := range map[int]int{1: 36, 2: 30, 3: 26, 4: 22, 5: 20, 6: 18} {
		c.UpdateStyle(fmt.Sprintf("h%d", level), StyleOverride{FontSize: ref(size)})
	}
	c.UpdateStyle("paragraph", StyleOverride{LineHeight: ref(1.8)})
	return c
}
