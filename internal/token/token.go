package token

import "strings"

// Token is one node of a flat block/inline token stream, shaped after the
// markdown-it token model. Block tokens come in _open/_close pairs
// (Nesting 1/-1); self-closing and inline tokens have Nesting 0.
type Token struct {
	Type     string
	Tag      string
	Nesting  int
	Attrs    []Attr
	Map      *LineRange
	Level    int
	Children []*Token
	Content  string
	Markup   string
	Info     string
	Block    bool
	Hidden   bool
}

// Attr is a single ordered attribute. Keys are unique within a token.
type Attr struct {
	Name  string
	Value string
}

// LineRange is a source range [Start, End) in 0-based line numbers.
type LineRange struct {
	Start int
	End   int
}

// New creates a token with the given type, tag and nesting.
func New(typ, tag string, nesting int) *Token {
	return &Token{Type: typ, Tag: tag, Nesting: nesting}
}

// NewBlock creates a token that occupies its own line.
func NewBlock(typ, tag string, nesting int) *Token {
	t := New(typ, tag, nesting)
	t.Block = true
	return t
}

// NewText returns an inline token whose only child is a text token with the
// given content.
func NewText(content string) *Token {
	inline := New("inline", "", 0)
	inline.Content = content
	text := New("text", "", 0)
	text.Content = content
	inline.Children = []*Token{text}
	return inline
}

// AttrIndex returns the position of the named attribute, or -1.
func (t *Token) AttrIndex(name string) int {
	for i, a := range t.Attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// AttrGet returns the value of the named attribute.
func (t *Token) AttrGet(name string) (string, bool) {
	if i := t.AttrIndex(name); i >= 0 {
		return t.Attrs[i].Value, true
	}
	return "", false
}

// AttrSet sets an attribute, keeping its original position when it already
// exists.
func (t *Token) AttrSet(name, value string) {
	if i := t.AttrIndex(name); i >= 0 {
		t.Attrs[i].Value = value
		return
	}
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// AttrJoin appends value to an existing attribute separated by a space, or
// sets it when absent.
func (t *Token) AttrJoin(name, value string) {
	if i := t.AttrIndex(name); i >= 0 {
		if t.Attrs[i].Value == "" {
			t.Attrs[i].Value = value
		} else {
			t.Attrs[i].Value += " " + value
		}
		return
	}
	t.Attrs = append(t.Attrs, Attr{Name: name, Value: value})
}

// Types returns the type of every token, in order.
func Types(tokens []*Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

// JoinClasses joins non-empty class names with single spaces.
func JoinClasses(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
