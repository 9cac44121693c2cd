package controller

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/mdtabs/internal/dom"
)

var selParagraph = cascadia.MustCompile("p")

// fakeLayout reports a fixed scroll parent and a sequence of offsets, and
// records scroll requests.
type fakeLayout struct {
	parent     *html.Node
	offsets    []dom.Offset
	calls      int
	scrolledTo [][2]float64
	intoView   []*html.Node
}

func (l *fakeLayout) ScrollParent(*html.Node) *html.Node {
	return l.parent
}

func (l *fakeLayout) Offset(_, _ *html.Node) dom.Offset {
	if len(l.offsets) == 0 {
		return dom.Offset{}
	}
	i := min(l.calls, len(l.offsets)-1)
	l.calls++
	return l.offsets[i]
}

func (l *fakeLayout) ScrollTo(_ *html.Node, left, top float64) {
	l.scrolledTo = append(l.scrolledTo, [2]float64{left, top})
}

func (l *fakeLayout) ScrollIntoView(n *html.Node) {
	l.intoView = append(l.intoView, n)
}
