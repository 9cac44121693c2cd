package dom

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

const page = `<div class="outer box" id="o"><p class="x">Hello <b>world</b></p><span id="s"></span></div>`

func parse(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := ParseString(src, opts...)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func byID(doc *Document, id string) *html.Node {
	return doc.Find(cascadia.MustCompile("*"), func(n *html.Node) bool {
		return GetAttr(n, "id") == id
	})
}

func TestClasses(t *testing.T) {
	doc := parse(t, page)
	n := byID(doc, "o")

	if !HasClass(n, "box") || HasClass(n, "bo") {
		t.Errorf("HasClass mismatch for %q", GetAttr(n, "class"))
	}
	AddClass(n, "active")
	AddClass(n, "active")
	if got := GetAttr(n, "class"); got != "outer box active" {
		t.Errorf("class = %q, want %q", got, "outer box active")
	}
	RemoveClass(n, "box")
	if got := GetAttr(n, "class"); got != "outer active" {
		t.Errorf("class = %q, want %q", got, "outer active")
	}
	ToggleClass(n, "active", false)
	ToggleClass(n, "open", true)
	if got := Classes(n); !reflect.DeepEqual(got, []string{"outer", "open"}) {
		t.Errorf("classes = %v", got)
	}
}

func TestAttrs(t *testing.T) {
	doc := parse(t, page)
	n := byID(doc, "s")

	SetAttr(n, "data-a", "1")
	SetAttr(n, "data-b", "2")
	SetAttr(n, "data-a", "3")
	if got := GetAttr(n, "data-a"); got != "3" {
		t.Errorf("data-a = %q, want 3", got)
	}
	if n.Attr[1].Key != "data-a" {
		t.Errorf("attribute moved: %v", n.Attr)
	}
	RemoveAttr(n, "data-a")
	if HasAttr(n, "data-a") || !HasAttr(n, "data-b") {
		t.Errorf("attrs after remove = %v", n.Attr)
	}
}

func TestTraversal(t *testing.T) {
	doc := parse(t, page)
	outer := byID(doc, "o")
	b := doc.Find(cascadia.MustCompile("b"), func(*html.Node) bool { return true })

	if got := Closest(b, cascadia.MustCompile(".outer")); got != outer {
		t.Errorf("Closest = %v, want outer div", got)
	}
	if Closest(b, cascadia.MustCompile(".missing")) != nil {
		t.Error("Closest found a missing class")
	}
	if !Contains(outer, b) || Contains(b, outer) {
		t.Error("Contains mismatch")
	}
	if got := len(Children(outer, nil)); got != 2 {
		t.Errorf("children = %d, want 2", got)
	}
	if got := Child(outer, cascadia.MustCompile("span")); GetAttr(got, "id") != "s" {
		t.Errorf("Child(span) = %v", got)
	}
	if p := ParentElement(b); p.Data != "p" {
		t.Errorf("parent = %q, want p", p.Data)
	}
	if got := len(QueryAll(doc.Root, cascadia.MustCompile(".x, span"))); got != 2 {
		t.Errorf("QueryAll = %d, want 2", got)
	}
}

func TestTextContent(t *testing.T) {
	doc := parse(t, page)
	p := Query(doc.Root, cascadia.MustCompile("p"))

	if got := TextContent(p); got != "Hello world" {
		t.Errorf("text = %q, want %q", got, "Hello world")
	}
	SetTextContent(p, "Bye")
	if got := TextContent(p); got != "Bye" {
		t.Errorf("text = %q, want Bye", got)
	}
	if !strings.Contains(doc.String(), "<p class=\"x\">Bye</p>") {
		t.Errorf("rendered = %s", doc.String())
	}
}

func TestEvents(t *testing.T) {
	doc := parse(t, page)
	s := byID(doc, "s")

	var got []string
	remove := doc.AddEventListener("click", func(e *Event) {
		got = append(got, "a:"+GetAttr(e.EffectiveTarget(), "id"))
	})
	doc.AddEventListener("click", func(e *Event) {
		got = append(got, "b:"+e.Type)
	})
	doc.AddEventListener("keydown", func(e *Event) {
		got = append(got, "k:"+e.Key)
	})

	doc.Click(s)
	remove()
	doc.Click(s)
	doc.KeyDown(s, "ArrowLeft")

	want := []string{"a:s", "b:click", "b:click", "k:ArrowLeft"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if doc.ListenerCount("click") != 1 {
		t.Errorf("click listeners = %d, want 1", doc.ListenerCount("click"))
	}
}

func TestEffectiveTarget(t *testing.T) {
	a, b := &html.Node{Type: html.ElementNode}, &html.Node{Type: html.ElementNode}
	tests := []struct {
		name string
		e    Event
		want *html.Node
	}{
		{"target only", Event{Target: a}, a},
		{"composed path", Event{Target: a, Path: []*html.Node{b, a}}, b},
		{"empty path", Event{Target: a, Path: []*html.Node{}}, a},
	}
	for _, tt := range tests {
		if got := tt.e.EffectiveTarget(); got != tt.want {
			t.Errorf("%s: got %p, want %p", tt.name, got, tt.want)
		}
	}
}

func TestFocus(t *testing.T) {
	doc := parse(t, page)
	if doc.ActiveElement() != nil {
		t.Error("new document has focus")
	}
	s := byID(doc, "s")
	doc.Focus(s)
	if doc.ActiveElement() != s {
		t.Error("focus not moved")
	}
}

func TestLocation(t *testing.T) {
	u, _ := url.Parse("https://example.com/docs/page?lang=go#top")
	doc := parse(t, page, WithURL(u))

	doc.Location.SetQuery("tabs", "os_linux_regular,lang_go_radio")
	if got := doc.Location.Query("tabs"); got != "os_linux_regular,lang_go_radio" {
		t.Errorf("tabs = %q", got)
	}
	if got := doc.Location.Query("lang"); got != "go" {
		t.Errorf("lang = %q, want go", got)
	}
	doc.Location.DeleteQuery("tabs")
	if got := doc.Location.String(); got != "https://example.com/docs/page?lang=go#top" {
		t.Errorf("url = %q", got)
	}
	if u.RawQuery != "lang=go" {
		t.Error("caller URL was modified")
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	if _, ok := s.GetItem("k"); ok {
		t.Error("empty storage has item")
	}
	if err := s.SetItem("k", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok := s.GetItem("k"); !ok || v != "v" {
		t.Errorf("GetItem = %q, %v", v, ok)
	}
	s.RemoveItem("k")
	if _, ok := s.GetItem("k"); ok {
		t.Error("item not removed")
	}
}

func TestScheduler(t *testing.T) {
	var s Scheduler
	var order []int
	s.Defer(func() {
		order = append(order, 1)
		s.Defer(func() { order = append(order, 3) })
	})
	s.Defer(func() { order = append(order, 2) })

	if s.Pending() != 2 {
		t.Errorf("pending = %d, want 2", s.Pending())
	}
	if n := s.Flush(); n != 3 {
		t.Errorf("ran = %d, want 3", n)
	}
	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("order = %v", order)
	}
}
