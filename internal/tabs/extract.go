package tabs

import "github.com/ziadkadry99/mdtabs/internal/token"

// Tab is one item of a tab block: its raw title, its body tokens and the
// list item it came from.
type Tab struct {
	Name     string
	Tokens   []*token.Token
	ListItem *token.Token

	titled bool
}

func (t *Tab) empty() bool {
	return t.Name == "" && len(t.Tokens) == 0
}

// extractTabs groups the tokens between an open tag and its {% endlist %}
// into tabs, one per top-level list item. Nested lists stay in the body of
// the current tab.
func extractTabs(tokens []*token.Token, start, closeIndex int) []*Tab {
	var (
		tabs    []*Tab
		pending *Tab
		depth   = -1 // -1 until the first list opens
	)
	current := func() *Tab {
		if pending == nil {
			pending = &Tab{}
		}
		return pending
	}
	push := func(t *token.Token) {
		p := current()
		p.Tokens = append(p.Tokens, t)
	}

	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Type {
		case "bullet_list_open", "ordered_list_open":
			if depth > -1 {
				push(t)
			}
			depth++

		case "list_item_open":
			if depth != 0 {
				push(t)
			} else {
				pending = &Tab{ListItem: t}
			}

		case "list_item_close":
			if depth != 0 {
				push(t)
			} else {
				tabs = append(tabs, current())
				pending = nil
			}

		case "bullet_list_close", "ordered_list_close":
			if depth == 0 {
				return tabs
			}
			depth--
			push(t)

		case "paragraph_open":
			if i == closeIndex {
				if depth == 0 && pending != nil && !pending.empty() {
					tabs = append(tabs, pending)
				}
				return tabs
			}
			p := current()
			if depth == 0 && !p.titled && len(p.Tokens) == 0 &&
				i+1 < len(tokens) && tokens[i+1].Type == "inline" {
				p.Name = tokens[i+1].Content
				p.titled = true
				i += 2
				continue
			}
			push(t)

		default:
			push(t)
		}
	}
	return tabs
}
