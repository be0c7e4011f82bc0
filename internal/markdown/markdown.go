// Package markdown turns draft text into a flat list of styled blocks for
// the preview pane. It parses with goldmark and reduces the AST to the
// handful of structures the renderer draws: headings, paragraphs, list
// items, code blocks, blockquotes and rules.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind tags a rendered block.
type BlockKind uint8

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
	KindCodeBlock
	KindBlockquote
	KindRule
)

// SpanStyle is a bitmask of inline styles.
type SpanStyle uint8

const (
	StyleEmph SpanStyle = 1 << iota
	StyleStrong
	StyleCode
)

// Span is a run of text with a uniform style.
type Span struct {
	Text  string
	Style SpanStyle
}

// Block is one renderable unit of the preview.
type Block struct {
	Kind BlockKind

	// Level is the heading level, or the nesting depth of a list item.
	Level int

	// Spans holds the inline content for text blocks.
	Spans []Span

	// Lines holds verbatim content for code blocks.
	Lines []string

	// Info is the fence language tag, when present.
	Info string
}

// Text flattens the block's inline content.
func (b Block) Text() string {
	if b.Kind == KindCodeBlock {
		return strings.Join(b.Lines, "\n")
	}
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Parse converts markdown source into preview blocks.
func Parse(source string) []Block {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		blocks = append(blocks, convert(node, src, 0)...)
	}
	return blocks
}

func convert(node ast.Node, src []byte, depth int) []Block {
	switch n := node.(type) {
	case *ast.Heading:
		return []Block{{Kind: KindHeading, Level: n.Level, Spans: inlineSpans(n, src, 0)}}

	case *ast.Paragraph, *ast.TextBlock:
		return []Block{{Kind: KindParagraph, Spans: inlineSpans(node, src, 0)}}

	case *ast.List:
		var out []Block
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			out = append(out, convertListItem(item, src, depth)...)
		}
		return out

	case *ast.Blockquote:
		var spans []Span
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if len(spans) > 0 {
				spans = append(spans, Span{Text: " "})
			}
			spans = append(spans, inlineSpans(c, src, 0)...)
		}
		return []Block{{Kind: KindBlockquote, Spans: spans}}

	case *ast.FencedCodeBlock:
		info := ""
		if n.Info != nil {
			info = string(n.Info.Segment.Value(src))
		}
		return []Block{{Kind: KindCodeBlock, Lines: rawLines(n, src), Info: info}}

	case *ast.CodeBlock:
		return []Block{{Kind: KindCodeBlock, Lines: rawLines(n, src)}}

	case *ast.ThematicBreak:
		return []Block{{Kind: KindRule}}

	default:
		// Unknown containers contribute their children flattened.
		var out []Block
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			out = append(out, convert(c, src, depth)...)
		}
		return out
	}
}

// convertListItem flattens one list item: its inline content becomes a
// KindListItem block and any nested list follows at depth+1.
func convertListItem(item ast.Node, src []byte, depth int) []Block {
	var spans []Span
	var nested []Block
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if list, ok := c.(*ast.List); ok {
			nested = append(nested, convert(list, src, depth+1)...)
			continue
		}
		if len(spans) > 0 {
			spans = append(spans, Span{Text: " "})
		}
		spans = append(spans, inlineSpans(c, src, 0)...)
	}
	out := []Block{{Kind: KindListItem, Level: depth, Spans: spans}}
	return append(out, nested...)
}

func inlineSpans(parent ast.Node, src []byte, style SpanStyle) []Span {
	var out []Span
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			out = append(out, Span{Text: string(n.Segment.Value(src)), Style: style})
			if n.SoftLineBreak() || n.HardLineBreak() {
				out = append(out, Span{Text: " ", Style: style})
			}
		case *ast.Emphasis:
			added := StyleEmph
			if n.Level >= 2 {
				added = StyleStrong
			}
			out = append(out, inlineSpans(n, src, style|added)...)
		case *ast.CodeSpan:
			out = append(out, Span{Text: codeSpanText(n, src), Style: style | StyleCode})
		case *ast.Link:
			out = append(out, inlineSpans(n, src, style)...)
		case *ast.AutoLink:
			out = append(out, Span{Text: string(n.URL(src)), Style: style})
		case *ast.Image:
			out = append(out, inlineSpans(n, src, style)...)
		default:
			if c.HasChildren() {
				out = append(out, inlineSpans(c, src, style)...)
			}
		}
	}
	return out
}

func codeSpanText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}

func rawLines(n ast.Node, src []byte) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(src)), "\n"))
	}
	return out
}
