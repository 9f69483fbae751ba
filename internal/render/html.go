package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WallText flattens the wall's HTML into plain terminal lines. Block
// elements start a new line, entities are unescaped, script and style
// contents are dropped. Lines are trimmed and empty ones removed.
func WallText(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))

	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was read
			return tidyLines(b.String())

		case html.TextToken:
			if skip > 0 {
				continue
			}
			b.Write(z.Text())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if isHidden(a) && tt == html.StartTagToken {
				skip++
				continue
			}
			if isBlock(a) {
				b.WriteByte('\n')
			}
			if a == atom.Li {
				b.WriteString("• ")
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if isHidden(a) {
				if skip > 0 {
					skip--
				}
				continue
			}
			if isBlock(a) {
				b.WriteByte('\n')
			}
		}
	}
}

func isHidden(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style || a == atom.Head || a == atom.Title
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol, atom.Tr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Pre, atom.Blockquote, atom.Hr, atom.Section, atom.Article:
		return true
	}
	return false
}

// tidyLines trims each line and drops empty ones
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
