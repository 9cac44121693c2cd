package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr returns the value of the named attribute, or "".
func GetAttr(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets an attribute, keeping its position when it already exists.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	return strings.Fields(GetAttr(n, "class"))
}

// HasClass reports whether n has the given class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to n unless it is already present.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(GetAttr(n, "class")+" "+class))
}

// RemoveClass removes every occurrence of class from n.
func RemoveClass(n *html.Node, class string) {
	if !HasClass(n, class) {
		return
	}
	var kept []string
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds class when on is true and removes it otherwise.
func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
	} else {
		RemoveClass(n, class)
	}
}

// ParentElement returns the closest element ancestor of n.
func ParentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// Closest returns n or its nearest element ancestor matched by m.
func Closest(n *html.Node, m cascadia.Matcher) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m.Match(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether child is root or one of its descendants.
func Contains(root, child *html.Node) bool {
	for n := child; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// QueryAll returns the descendants of n matched by m in document order.
func QueryAll(n *html.Node, m cascadia.Matcher) []*html.Node {
	return cascadia.QueryAll(n, m)
}

// Query returns the first descendant of n matched by m.
func Query(n *html.Node, m cascadia.Matcher) *html.Node {
	return cascadia.Query(n, m)
}

// Children returns the element children of n matched by m. A nil m matches
// every element.
func Children(n *html.Node, m cascadia.Matcher) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (m == nil || m.Match(c)) {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child of n matched by m.
func Child(n *html.Node, m cascadia.Matcher) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (m == nil || m.Match(c)) {
			return c
		}
	}
	return nil
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// SetTextContent replaces the children of n with a single text node.
func SetTextContent(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
