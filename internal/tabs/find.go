package tabs

import (
	"regexp"
	"strings"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

var tabOpenRe = regexp.MustCompile("`?\\{% list tabs .*?%\\}`?")

const endlistText = "{% endlist %}"

// Props are the parameters of a {% list tabs ... %} tag.
type Props struct {
	Variant Variant
	Group   string
}

// blockMatch locates one tab block in a token stream.
type blockMatch struct {
	openTag    string
	props      Props
	closeIndex int // paragraph_open of {% endlist %}
	extra      int // list close tokens absorbed after {% endlist %}
}

// end is the index just past the last token the block replaces.
func (m *blockMatch) end() int {
	return m.closeIndex + 3 + m.extra
}

// locateResult is either a match or the number of tokens to skip.
type locateResult struct {
	step  int
	match *blockMatch
}

// matchOpen returns the open tag text when tokens[i] starts a paragraph
// holding {% list tabs ... %}.
func matchOpen(tokens []*token.Token, i int) string {
	if i+1 >= len(tokens) || tokens[i].Type != "paragraph_open" || tokens[i+1].Type != "inline" {
		return ""
	}
	return tabOpenRe.FindString(tokens[i+1].Content)
}

func matchClose(tokens []*token.Token, i int) bool {
	return i+1 < len(tokens) &&
		tokens[i].Type == "paragraph_open" &&
		tokens[i+1].Type == "inline" &&
		strings.TrimSpace(tokens[i+1].Content) == endlistText
}

func isEscaped(openTag string) bool {
	return len(openTag) > 1 && strings.HasPrefix(openTag, "`") && strings.HasSuffix(openTag, "`")
}

// findClose returns the index of the {% endlist %} paragraph matching an
// open tag, skipping over nested blocks, or -1.
func findClose(tokens []*token.Token, from int) int {
	depth := 0
	for i := from; i < len(tokens); i++ {
		if tag := matchOpen(tokens, i); tag != "" && !isEscaped(tag) {
			depth++
		} else if matchClose(tokens, i) {
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// locate checks whether a tab block starts at index.
func locate(tokens []*token.Token, index int) locateResult {
	openTag := matchOpen(tokens, index)
	if openTag == "" || isEscaped(openTag) {
		return locateResult{step: 1}
	}

	closeIndex := findClose(tokens, index+3)
	if closeIndex < 0 {
		return unterminated(tokens[index])
	}

	openLevel := tokens[index].Level
	closeLevel := tokens[closeIndex].Level

	// An {% endlist %} dedented below its open tag cannot close it.
	if closeLevel < openLevel {
		return unterminated(tokens[index])
	}

	// A deeper {% endlist %} must be the last thing in the final list item.
	extra := 0
	if closeLevel > openLevel {
		after := closeIndex + 3
		if after+1 >= len(tokens) ||
			tokens[after].Type != "list_item_close" ||
			!isListClose(tokens[after+1]) {
			return unterminated(tokens[index])
		}
		extra = 2
	}

	return locateResult{match: &blockMatch{
		openTag:    openTag,
		props:      parseProps(openTag),
		closeIndex: closeIndex,
		extra:      extra,
	}}
}

func unterminated(open *token.Token) locateResult {
	open.AttrSet(DiagnosticUnterminated, "true")
	return locateResult{step: 3}
}

func isListClose(t *token.Token) bool {
	return t.Type == "bullet_list_close" || t.Type == "ordered_list_close"
}

// parseProps reads the variant keyword and group from an open tag. Unknown
// parameters are ignored.
func parseProps(openTag string) Props {
	inner := strings.Trim(openTag, "`")
	inner = strings.TrimPrefix(inner, "{%")
	inner = strings.TrimSuffix(inner, "%}")
	inner = strings.Replace(inner, "list tabs", "", 1)

	props := Props{
		Variant: VariantRegular,
		Group:   DefaultGroupPrefix + GenerateID(),
	}
	for _, field := range strings.Fields(inner) {
		key, value, _ := strings.Cut(field, "=")
		if v, ok := ParseVariant(key); ok {
			props.Variant = v
			continue
		}
		if key == "group" {
			if group := unquote(strings.TrimSpace(value)); group != "" {
				props.Group = group
			}
		}
	}
	return props
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
