// Package dom provides a live HTML document for code that would otherwise
// run in a browser: element helpers over golang.org/x/net/html, delegated
// event dispatch, focus, local storage, the page location, layout and a
// deferred-callback scheduler.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Event is a DOM event delivered to document listeners.
type Event struct {
	Type   string
	Key    string
	Target *html.Node
	// Path is the composed propagation path, innermost node first, when the
	// host can provide one (for example across shadow roots).
	Path []*html.Node
}

// EffectiveTarget returns the node the event originated from: the first
// node of the composed path, falling back to Target.
func (e *Event) EffectiveTarget() *html.Node {
	if len(e.Path) > 0 && e.Path[0] != nil {
		return e.Path[0]
	}
	return e.Target
}

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	fn Listener
}

// Document is a parsed HTML page with its host services.
type Document struct {
	Root      *html.Node
	Storage   Storage
	Location  *Location
	Layout    Layout
	Scheduler *Scheduler

	listeners map[string][]*listener
	focused   *html.Node
}

// Option configures a Document.
type Option func(*Document)

// WithStorage sets the document's local storage.
func WithStorage(s Storage) Option {
	return func(d *Document) { d.Storage = s }
}

// WithURL sets the document location.
func WithURL(u *url.URL) Option {
	return func(d *Document) { d.Location = NewLocation(u) }
}

// WithLayout sets the layout used for scroll handling.
func WithLayout(l Layout) Option {
	return func(d *Document) { d.Layout = l }
}

// New wraps root in a Document.
func New(root *html.Node, opts ...Option) *Document {
	d := &Document{
		Root:      root,
		Storage:   NewMemoryStorage(),
		Location:  NewLocation(&url.URL{Path: "/"}),
		Layout:    StaticLayout{},
		Scheduler: &Scheduler{},
		listeners: make(map[string][]*listener),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads an HTML page.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return New(root, opts...), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// QueryAll returns every element of the document matched by m.
func (d *Document) QueryAll(m cascadia.Matcher) []*html.Node {
	return QueryAll(d.Root, m)
}

// Find returns the first element matched by m for which pred is true.
func (d *Document) Find(m cascadia.Matcher, pred func(*html.Node) bool) *html.Node {
	for _, n := range d.QueryAll(m) {
		if pred(n) {
			return n
		}
	}
	return nil
}

// AddEventListener registers fn for events of type typ and returns a
// function that removes it.
func (d *Document) AddEventListener(typ string, fn Listener) func() {
	l := &listener{fn: fn}
	d.listeners[typ] = append(d.listeners[typ], l)
	return func() {
		list := d.listeners[typ]
		for i, x := range list {
			if x == l {
				d.listeners[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (d *Document) ListenerCount(typ string) int {
	return len(d.listeners[typ])
}

// Dispatch delivers e to the listeners of its type in registration order.
func (d *Document) Dispatch(e *Event) {
	for _, l := range append([]*listener(nil), d.listeners[e.Type]...) {
		l.fn(e)
	}
}

// Click dispatches a click on n.
func (d *Document) Click(n *html.Node) {
	d.Dispatch(&Event{Type: "click", Target: n})
}

// KeyDown dispatches a keydown for key on n.
func (d *Document) KeyDown(n *html.Node, key string) {
	d.Dispatch(&Event{Type: "keydown", Key: key, Target: n})
}

// Focus moves focus to n.
func (d *Document) Focus(n *html.Node) {
	d.focused = n
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *html.Node {
	return d.focused
}
