package dom

import (
	"net/url"
	"sync"

	"golang.org/x/net/html"
)

// Storage is a string key/value store such as a browser's local storage.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string)
}

// MemoryStorage is an in-memory Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Location is the mutable URL of a document. Query updates replace the
// current history entry.
type Location struct {
	u *url.URL
}

// NewLocation wraps a copy of u.
func NewLocation(u *url.URL) *Location {
	c := *u
	return &Location{u: &c}
}

// ParseLocation parses raw into a Location.
func ParseLocation(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Location{u: u}, nil
}

// Query returns the decoded value of a query parameter.
func (l *Location) Query(key string) string {
	return l.u.Query().Get(key)
}

// SetQuery sets a query parameter.
func (l *Location) SetQuery(key, value string) {
	q := l.u.Query()
	q.Set(key, value)
	l.u.RawQuery = q.Encode()
}

// DeleteQuery removes a query parameter.
func (l *Location) DeleteQuery(key string) {
	q := l.u.Query()
	q.Del(key)
	l.u.RawQuery = q.Encode()
}

// URL returns a copy of the current URL.
func (l *Location) URL() *url.URL {
	c := *l.u
	return &c
}

func (l *Location) String() string {
	return l.u.String()
}

// Offset is the position of an element relative to a scroll container,
// together with the container's scroll position.
type Offset struct {
	Top, Left             float64
	ScrollTop, ScrollLeft float64
}

// Layout answers geometry questions about rendered elements and performs
// scrolling.
type Layout interface {
	// ScrollParent returns the closest scrollable ancestor of n (or n
	// itself), or nil when the whole document scrolls.
	ScrollParent(n *html.Node) *html.Node
	Offset(n, scrollParent *html.Node) Offset
	ScrollTo(scrollParent *html.Node, left, top float64)
	ScrollIntoView(n *html.Node)
}

// StaticLayout is a Layout without geometry. Nothing is scrollable and
// scroll requests are ignored.
type StaticLayout struct{}

func (StaticLayout) ScrollParent(*html.Node) *html.Node { return nil }

func (StaticLayout) Offset(_, _ *html.Node) Offset { return Offset{} }

func (StaticLayout) ScrollTo(*html.Node, float64, float64) {}

func (StaticLayout) ScrollIntoView(*html.Node) {}

// Scheduler queues zero-delay callbacks until the host runs them.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()
}

// Defer queues fn.
func (s *Scheduler) Defer(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, fn)
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Flush runs queued callbacks in order, including those queued while
// flushing, and returns how many ran.
func (s *Scheduler) Flush() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return ran
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn()
		ran++
	}
}
