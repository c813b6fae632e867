/*
Package render turns generated markdown into something a person can read,
either styled terminal text or HTML.
*/
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	headingStyles = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1E88E5", Dark: "#42A5F5"}),
		lipgloss.NewStyle().Bold(true),
	}

	strongStyle = lipgloss.NewStyle().Bold(true)
	emStyle     = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"})
	linkStyle   = lipgloss.NewStyle().Underline(true)
	quoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#BDBDBD"})
)

const (
	bullet     = "• "
	quoteBar   = "│ "
	ruleWidth  = 40
	codeIndent = "    "
)

/*
Terminal renders markdown as styled text wrapped at width columns. A width
of zero or less disables wrapping.
*/
func Terminal(markdown string, width int) string {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	r := &terminal{source: source, width: width}
	return strings.Join(r.children(doc, width), "\n\n")
}

/*
HTML converts markdown with goldmark's default renderer.
*/
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer

	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	return buf.String(), nil
}

type terminal struct {
	source []byte
	width  int
}

func (r *terminal) children(n ast.Node, width int) []string {
	var blocks []string

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if out := r.block(c, width); out != "" {
			blocks = append(blocks, out)
		}
	}

	return blocks
}

func (r *terminal) block(n ast.Node, width int) string {
	switch node := n.(type) {
	case *ast.Heading:
		level := min(node.Level, len(headingStyles)) - 1
		return headingStyles[level].Render(r.wrap(r.inline(node), width))
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inline(node), width)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.code(node)
	case *ast.List:
		return r.list(node, width)
	case *ast.Blockquote:
		inner := strings.Join(r.children(node, width-len(quoteBar)), "\n\n")
		return quoteStyle.Render(prefixLines(inner, quoteBar, quoteBar))
	case *ast.ThematicBreak:
		w := ruleWidth
		if width > 0 && width < w {
			w = width
		}
		return strings.Repeat("─", w)
	case *ast.HTMLBlock:
		return strings.TrimRight(r.lines(node), "\n")
	}

	return strings.Join(r.children(n, width), "\n\n")
}

func (r *terminal) list(list *ast.List, width int) string {
	var (
		items []string
		index = list.Start
	)

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := bullet
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}

		sep := "\n"
		if !list.IsTight {
			sep = "\n\n"
		}

		body := strings.Join(r.children(item, width-len(marker)), sep)
		items = append(items, prefixLines(body, marker, strings.Repeat(" ", ansi.StringWidth(marker))))
	}

	if list.IsTight {
		return strings.Join(items, "\n")
	}
	return strings.Join(items, "\n\n")
}

func (r *terminal) code(n ast.Node) string {
	body := strings.TrimRight(r.lines(n), "\n")
	return codeStyle.Render(prefixLines(body, codeIndent, codeIndent))
}

func (r *terminal) lines(n ast.Node) string {
	var b strings.Builder

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(r.source))
	}

	return b.String()
}

func (r *terminal) inline(n ast.Node) string {
	var b strings.Builder

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(r.source))
			switch {
			case node.HardLineBreak():
				b.WriteString("\n")
			case node.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeSpan:
			b.WriteString(codeStyle.Render(r.inline(node)))
		case *ast.Emphasis:
			if node.Level >= 2 {
				b.WriteString(strongStyle.Render(r.inline(node)))
			} else {
				b.WriteString(emStyle.Render(r.inline(node)))
			}
		case *ast.Link:
			label := r.inline(node)
			b.WriteString(linkStyle.Render(label))
			if dest := string(node.Destination); dest != "" && dest != label {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.AutoLink:
			b.WriteString(linkStyle.Render(string(node.URL(r.source))))
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				segment := node.Segments.At(i)
				b.Write(segment.Value(r.source))
			}
		default:
			b.WriteString(r.inline(c))
		}
	}

	return b.String()
}

func (r *terminal) wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}

// prefixLines puts first before the first line and rest before every other.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = first + line
			continue
		}
		if line == "" {
			continue
		}
		lines[i] = rest + line
	}
	return strings.Join(lines, "\n")
}
