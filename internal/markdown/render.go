package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

// Renderer turns a token stream back into HTML.
type Renderer struct {
	// fences renders fenced code blocks with syntax highlighting when set.
	fences goldmark.Markdown
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithHighlighting enables chroma highlighting of fenced code blocks using
// the given style name (for example "github").
func WithHighlighting(style string) RendererOption {
	return func(r *Renderer) {
		if style == "" {
			style = "github"
		}
		r.fences = goldmark.New(
			goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		)
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes tokens as HTML.
func (r *Renderer) Render(tokens []*token.Token) (string, error) {
	var buf bytes.Buffer
	for i, t := range tokens {
		switch t.Type {
		case "inline":
			r.renderInline(&buf, t.Children)
		case "fence":
			if err := r.renderFence(&buf, t); err != nil {
				return "", fmt.Errorf("rendering fence at token %d: %w", i, err)
			}
		case "code_block":
			buf.WriteString("<pre><code>")
			buf.Write(util.EscapeHTML([]byte(t.Content)))
			buf.WriteString("</code></pre>\n")
		case "html_block":
			buf.WriteString(t.Content)
		default:
			renderToken(&buf, tokens, i)
		}
	}
	return buf.String(), nil
}

// renderToken writes a generic open, close or self-closing tag.
func renderToken(buf *bytes.Buffer, tokens []*token.Token, idx int) {
	t := tokens[idx]
	if t.Hidden {
		return
	}
	if t.Block && t.Nesting != -1 && idx > 0 && tokens[idx-1].Hidden {
		buf.WriteByte('\n')
	}
	if t.Tag == "" {
		return
	}

	if t.Nesting == -1 {
		buf.WriteString("</")
	} else {
		buf.WriteString("<")
	}
	buf.WriteString(t.Tag)
	writeAttrs(buf, t.Attrs)
	buf.WriteString(">")

	needLf := t.Block
	if t.Block && t.Nesting == 1 && idx+1 < len(tokens) {
		next := tokens[idx+1]
		if next.Type == "inline" || next.Hidden {
			needLf = false
		} else if next.Nesting == -1 && next.Tag == t.Tag {
			needLf = false
		}
	}
	if needLf {
		buf.WriteByte('\n')
	}
}

func writeAttrs(buf *bytes.Buffer, attrs []token.Attr) {
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.Write(util.EscapeHTML([]byte(a.Value)))
		buf.WriteByte('"')
	}
}

func (r *Renderer) renderInline(buf *bytes.Buffer, children []*token.Token) {
	for i, t := range children {
		switch t.Type {
		case "text":
			buf.Write(util.EscapeHTML([]byte(t.Content)))
		case "softbreak":
			buf.WriteByte('\n')
		case "hardbreak":
			buf.WriteString("<br>\n")
		case "code_inline":
			buf.WriteString("<code")
			writeAttrs(buf, t.Attrs)
			buf.WriteString(">")
			buf.Write(util.EscapeHTML([]byte(t.Content)))
			buf.WriteString("</code>")
		case "html_inline":
			buf.WriteString(t.Content)
		default:
			renderToken(buf, children, i)
		}
	}
}

func (r *Renderer) renderFence(buf *bytes.Buffer, t *token.Token) error {
	lang := strings.Fields(t.Info)
	if r.fences == nil {
		buf.WriteString("<pre><code")
		if len(lang) > 0 {
			buf.WriteString(` class="language-`)
			buf.Write(util.EscapeHTML([]byte(lang[0])))
			buf.WriteByte('"')
		}
		buf.WriteString(">")
		buf.Write(util.EscapeHTML([]byte(t.Content)))
		buf.WriteString("</code></pre>\n")
		return nil
	}

	fence := strings.Repeat("`", longestRun(t.Content, '`')+1)
	if len(fence) < 3 {
		fence = "```"
	}
	var src strings.Builder
	src.WriteString(fence)
	src.WriteString(t.Info)
	src.WriteByte('\n')
	src.WriteString(t.Content)
	if !strings.HasSuffix(t.Content, "\n") && t.Content != "" {
		src.WriteByte('\n')
	}
	src.WriteString(fence)
	src.WriteByte('\n')
	return r.fences.Convert([]byte(src.String()), buf)
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			if cur > longest {
				longest = cur
			}
		} else {
			cur = 0
		}
	}
	return longest
}
