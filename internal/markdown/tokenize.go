package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

// Tokenizer parses markdown with goldmark and flattens the resulting AST into
// a block/inline token stream: paragraphs become paragraph_open, inline and
// paragraph_close, lists become *_list_open/list_item_open pairs, and so on.
// Every block token carries its nesting level and source line range.
type Tokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer returns a Tokenizer with GitHub Flavored Markdown enabled.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Tokenize parses src into a flat token stream.
func (t *Tokenizer) Tokenize(src []byte) []*token.Token {
	doc := t.md.Parser().Parse(text.NewReader(src))
	b := &builder{
		src:        src,
		md:         t.md,
		lineStarts: lineStarts(src),
	}
	b.blocks(doc)
	return b.out
}

// TokenizeString is a convenience wrapper around Tokenize.
func (t *Tokenizer) TokenizeString(src string) []*token.Token {
	return t.Tokenize([]byte(src))
}

type builder struct {
	src        []byte
	md         goldmark.Markdown
	lineStarts []int
	level      int
	out        []*token.Token
}

func (b *builder) blocks(parent ast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		b.block(c)
	}
}

func (b *builder) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		tag := fmt.Sprintf("h%d", node.Level)
		open := b.open("heading_open", tag, n)
		open.Markup = strings.Repeat("#", node.Level)
		b.inline(n)
		b.close("heading_close", tag).Markup = open.Markup

	case *ast.Paragraph:
		b.open("paragraph_open", "p", n)
		b.inline(n)
		b.close("paragraph_close", "p")

	case *ast.TextBlock:
		// Paragraphs of tight lists are kept in the stream but not rendered.
		b.open("paragraph_open", "p", n).Hidden = true
		b.inline(n)
		b.close("paragraph_close", "p").Hidden = true

	case *ast.List:
		typ, tag := "bullet_list", "ul"
		if node.IsOrdered() {
			typ, tag = "ordered_list", "ol"
		}
		open := b.open(typ+"_open", tag, n)
		open.Markup = string(node.Marker)
		if node.IsOrdered() && node.Start != 1 {
			open.AttrSet("start", fmt.Sprint(node.Start))
		}
		b.blocks(n)
		b.close(typ+"_close", tag).Markup = open.Markup

	case *ast.ListItem:
		marker := ""
		if list, ok := n.Parent().(*ast.List); ok {
			marker = string(list.Marker)
		}
		b.open("list_item_open", "li", n).Markup = marker
		b.blocks(n)
		b.close("list_item_close", "li").Markup = marker

	case *ast.Blockquote:
		b.open("blockquote_open", "blockquote", n).Markup = ">"
		b.blocks(n)
		b.close("blockquote_close", "blockquote").Markup = ">"

	case *ast.FencedCodeBlock:
		leaf := b.leaf("fence", "code", n)
		if node.Info != nil {
			leaf.Info = strings.TrimSpace(string(node.Info.Segment.Value(b.src)))
		}
		leaf.Content = b.rawLines(n)
		leaf.Markup = "```"

	case *ast.CodeBlock:
		b.leaf("code_block", "code", n).Content = b.rawLines(n)

	case *ast.ThematicBreak:
		b.leaf("hr", "hr", n).Markup = "---"

	case *ast.HTMLBlock:
		content := b.rawLines(n)
		if node.HasClosure() {
			content += string(node.ClosureLine.Value(b.src))
		}
		b.leaf("html_block", "", n).Content = content

	default:
		// Tables and other extension blocks are rendered by goldmark itself.
		b.leaf("html_block", "", n).Content = b.renderNode(n)
	}
}

func (b *builder) open(typ, tag string, n ast.Node) *token.Token {
	t := token.NewBlock(typ, tag, 1)
	t.Level = b.level
	t.Map = b.lineRange(n)
	b.level++
	b.out = append(b.out, t)
	return t
}

func (b *builder) close(typ, tag string) *token.Token {
	b.level--
	t := token.NewBlock(typ, tag, -1)
	t.Level = b.level
	b.out = append(b.out, t)
	return t
}

func (b *builder) leaf(typ, tag string, n ast.Node) *token.Token {
	t := token.NewBlock(typ, tag, 0)
	t.Level = b.level
	t.Map = b.lineRange(n)
	b.out = append(b.out, t)
	return t
}

func (b *builder) inline(n ast.Node) {
	t := token.New("inline", "", 0)
	t.Level = b.level
	t.Map = b.lineRange(n)
	t.Content = strings.TrimSpace(b.rawLines(n))
	t.Children = b.inlines(n)
	b.out = append(b.out, t)
}

func (b *builder) inlines(parent ast.Node) []*token.Token {
	var out []*token.Token
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			out = append(out, textToken(string(node.Segment.Value(b.src))))
			if node.HardLineBreak() {
				out = append(out, token.New("hardbreak", "br", 0))
			} else if node.SoftLineBreak() {
				out = append(out, token.New("softbreak", "br", 0))
			}

		case *ast.String:
			out = append(out, textToken(string(node.Value)))

		case *ast.CodeSpan:
			code := token.New("code_inline", "code", 0)
			code.Content = b.plainText(node)
			code.Markup = "`"
			out = append(out, code)

		case *ast.Emphasis:
			typ, tag := "em", "em"
			if node.Level == 2 {
				typ, tag = "strong", "strong"
			}
			out = append(out, token.New(typ+"_open", tag, 1))
			out = append(out, b.inlines(node)...)
			out = append(out, token.New(typ+"_close", tag, -1))

		case *ast.Link:
			open := token.New("link_open", "a", 1)
			open.AttrSet("href", string(node.Destination))
			if len(node.Title) > 0 {
				open.AttrSet("title", string(node.Title))
			}
			out = append(out, open)
			out = append(out, b.inlines(node)...)
			out = append(out, token.New("link_close", "a", -1))

		case *ast.Image:
			img := token.New("image", "img", 0)
			alt := b.plainText(node)
			img.AttrSet("src", string(node.Destination))
			img.AttrSet("alt", alt)
			if len(node.Title) > 0 {
				img.AttrSet("title", string(node.Title))
			}
			img.Content = alt
			out = append(out, img)

		case *ast.AutoLink:
			href := string(node.URL(b.src))
			if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
				href = "mailto:" + href
			}
			open := token.New("link_open", "a", 1)
			open.AttrSet("href", href)
			out = append(out, open, textToken(string(node.Label(b.src))), token.New("link_close", "a", -1))

		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(b.src))
			}
			raw := token.New("html_inline", "", 0)
			raw.Content = buf.String()
			out = append(out, raw)

		default:
			raw := token.New("html_inline", "", 0)
			raw.Content = b.renderNode(c)
			out = append(out, raw)
		}
	}
	return out
}

func textToken(content string) *token.Token {
	t := token.New("text", "", 0)
	t.Content = content
	return t
}

// plainText concatenates the text of all inline descendants of n.
func (b *builder) plainText(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(b.src))
		case *ast.String:
			sb.Write(node.Value)
		default:
			sb.WriteString(b.plainText(c))
		}
	}
	return sb.String()
}

func (b *builder) rawLines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.src))
	}
	return buf.String()
}

func (b *builder) renderNode(n ast.Node) string {
	var buf bytes.Buffer
	if err := b.md.Renderer().Render(&buf, b.src, n); err != nil {
		return ""
	}
	return buf.String()
}

// lineRange returns the [first, last+1) source lines covered by a block node
// and its block descendants, or nil when none of them carry positions.
func (b *builder) lineRange(n ast.Node) *token.LineRange {
	if n.Type() != ast.TypeBlock {
		return nil
	}
	start, stop := -1, -1
	var visit func(ast.Node)
	visit = func(n ast.Node) {
		if n.Type() != ast.TypeBlock {
			return
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	if start < 0 {
		return nil
	}
	last := stop - 1
	if last < start {
		last = start
	}
	return &token.LineRange{Start: b.lineOf(start), End: b.lineOf(last) + 1}
}

func (b *builder) lineOf(offset int) int {
	return sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
