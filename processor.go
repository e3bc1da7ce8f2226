package md2img

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ---- Markdown processor ----

// Block patterns are matched against whitespace-trimmed lines, inline
// patterns against the remaining unconsumed text. Parsing never fails: a
// line matching no block pattern is paragraph text, and an unterminated
// inline marker degrades to literal text.
var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	hrRe        = regexp.MustCompile(`^(?:-\s*){3,}$|^(?:\*\s*){3,}$|^(?:_\s*){3,}$`)
	ulistRe     = regexp.MustCompile(`^(\s*)([-*+])\s+(.*)$`)
	olistRe     = regexp.MustCompile(`^(\s*)(\d+)\.?\s+(.*)$`)
	quoteRe     = regexp.MustCompile(`^>\s*(.*)$`)
	inlineAnyRe = regexp.MustCompile("\\*\\*|__|_|\\*|`|~~")

	codeRe   = regexp.MustCompile("`(.*?)`")
	strikeRe = regexp.MustCompile(`~~(.*?)~~`)
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)
	italicRe = regexp.MustCompile(`\*(.*?)\*|_(.*?)_`)
)

// inlineFamilies is the inline precedence order: the first family with any
// match anywhere in the remaining text wins, most specific first.
var inlineFamilies = []struct {
	re   *regexp.Regexp
	node func(content string) Node
}{
	{codeRe, func(c string) Node { return NewCode(c) }},
	{strikeRe, func(c string) Node { return NewStrikethrough(c) }},
	{boldRe, func(c string) Node { return NewBold(c) }},
	{italicRe, func(c string) Node { return NewItalic(c) }},
}

// Parse converts markdown text into a document tree. It recognizes
// headings, horizontal rules, ordered/unordered lists, blockquotes and
// paragraphs, with code/strikethrough/bold/italic inline spans.
func Parse(text string) *Document {
	root := NewDocument()
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			root.Add(NewHeading(strings.TrimSpace(m[2]), len(m[1])))
			i++
			continue
		}
		if hrRe.MatchString(line) {
			root.Add(NewHorizontalRule())
			i++
			continue
		}
		if ulistRe.MatchString(line) {
			list, next := parseList(lines, i, false)
			root.Add(list)
			i = next
			continue
		}
		if olistRe.MatchString(line) {
			list, next := parseList(lines, i, true)
			root.Add(list)
			i = next
			continue
		}
		if quoteRe.MatchString(line) {
			quote, next := parseBlockquote(lines, i)
			root.Add(quote)
			i = next
			continue
		}

		// Paragraph: merge consecutive non-blank lines that start no
		// other block, each line but the last ending in a forced break.
		para := []string{line}
		j := i + 1
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if next == "" || isBlockStart(next) {
				break
			}
			para = append(para, next)
			j++
		}
		root.Add(buildParagraph(para))
		i = j
	}
	return root
}

// ParseFile reads and parses a markdown file. A missing file reports
// ErrMissingResource.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
		}
		return nil, err
	}
	return Parse(string(data)), nil
}

func isBlockStart(line string) bool {
	return headingRe.MatchString(line) ||
		hrRe.MatchString(line) ||
		ulistRe.MatchString(line) ||
		olistRe.MatchString(line) ||
		quoteRe.MatchString(line)
}

// parseList consumes list-item lines from start, including blank lines
// between items and continuation lines indented by at least the base
// indent plus two spaces. The owning List renumbers ordered markers; the
// literal source digits are discarded.
func parseList(lines []string, start int, ordered bool) (*List, int) {
	re := ulistRe
	if ordered {
		re = olistRe
	}
	list := NewList(ordered)
	i := start

	first := re.FindStringSubmatch(lines[i])
	if first == nil {
		return list, start + 1
	}
	baseIndent := len(first[1])
	var current *ListItem

	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			if i+1 < len(lines) && re.MatchString(lines[i+1]) {
				i++
				continue
			}
			i++
			break
		}
		if m := re.FindStringSubmatch(line); m != nil {
			current = NewListItem(m[3])
			list.Add(current)
			i++
		} else if strings.HasPrefix(line, strings.Repeat(" ", baseIndent+2)) && current != nil {
			current.Add(NewTextSpan(strings.TrimSpace(line)))
			i++
		} else {
			break
		}
	}
	return list, i
}

// parseBlockquote groups consecutive quote lines, embedded blank lines
// included, and recursively parses the stripped content as a nested
// document.
func parseBlockquote(lines []string, start int) (*Blockquote, int) {
	var quoted []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			quoted = append(quoted, "")
			i++
			continue
		}
		m := quoteRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			break
		}
		quoted = append(quoted, m[1])
		i++
	}
	inner := Parse(strings.Join(quoted, "\n"))
	return NewBlockquote(inner), i
}

func buildParagraph(lines []string) *Paragraph {
	p := NewParagraph()
	for i, line := range lines {
		for _, n := range parseInline(line) {
			p.Add(n)
		}
		if i < len(lines)-1 {
			p.Add(NewLineBreak())
		}
	}
	return p
}

// parseInline resolves inline spans by pattern family: the first family
// (code > strikethrough > bold > italic) with any match consumes all its
// matches, recursing into the text before and after each match. Matched
// content stays literal.
func parseInline(text string) []Node {
	if !inlineAnyRe.MatchString(text) {
		return []Node{NewTextSpan(text)}
	}

	for _, family := range inlineFamilies {
		locs := family.re.FindAllStringSubmatchIndex(text, -1)
		if locs == nil {
			continue
		}
		var out []Node
		last := 0
		for _, loc := range locs {
			if loc[0] > last {
				out = append(out, parseInline(text[last:loc[0]])...)
			}
			out = append(out, family.node(submatch(text, loc)))
			last = loc[1]
		}
		if last < len(text) {
			out = append(out, parseInline(text[last:])...)
		}
		return out
	}
	return []Node{NewTextSpan(text)}
}

// submatch returns the first capture group that participated in the match.
func submatch(text string, loc []int) string {
	for g := 1; g*2 < len(loc); g++ {
		if loc[g*2] >= 0 {
			return text[loc[g*2]:loc[g*2+1]]
		}
	}
	return ""
}
