// Package controller implements the interactive side of tab blocks: a
// controller bound to one document that switches tabs on clicks, keyboard
// navigation and API calls, keeps blocks of one group in sync and persists
// the choice in local storage and the page URL.
package controller

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/mdtabs/internal/dom"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

var (
	selTabs           = cascadia.MustCompile("." + tabs.TabsClassName)
	selTab            = cascadia.MustCompile("." + tabs.TabClassName)
	selTabList        = cascadia.MustCompile("." + tabs.TabsListClassName)
	selPanel          = cascadia.MustCompile("." + tabs.TabPanelClassName)
	selDropdownSelect = cascadia.MustCompile("." + tabs.DropdownSelectClass)
	selDropdownMenu   = cascadia.MustCompile("." + tabs.DropdownMenuClassName)
	selRadioInput     = cascadia.MustCompile("input.radio")
)

// Tab identifies a selection: a key within a group, rendered by a variant.
// An empty Variant matches blocks of any variant.
type Tab struct {
	Group   string
	Key     string
	Variant tabs.Variant
}

// SelectedTabEvent is delivered to OnSelectTab handlers after a selection
// changed the document. Tab.Group is empty for auto-generated groups.
type SelectedTabEvent struct {
	Tab          Tab
	CurrentTabID string
}

// Handler receives selection events.
type Handler func(SelectedTabEvent)

// SelectTabByIDOptions tune SelectTabByID.
type SelectTabByIDOptions struct {
	ScrollToElement bool
}

// Options control persistence.
type Options struct {
	LocalStorage bool
	QueryParam   bool
	StorageKey   string
	QueryKey     string
}

// DefaultOptions enables both persistence channels.
func DefaultOptions() Options {
	return Options{
		LocalStorage: true,
		QueryParam:   true,
		StorageKey:   "tabsHistory",
		QueryKey:     "tabs",
	}
}

type handlerEntry struct {
	fn Handler
}

// TabsController drives every tab block of one document. Elements are
// looked up on each call, so the document may be re-rendered between calls.
type TabsController struct {
	doc      *dom.Document
	opts     Options
	handlers []*handlerEntry
}

// New binds a controller to doc and installs its click and keydown
// listeners.
func New(doc *dom.Document, opts Options) *TabsController {
	c := &TabsController{doc: doc}
	c.Configure(opts)
	doc.AddEventListener("click", c.handleClick)
	doc.AddEventListener("keydown", c.handleKeyDown)
	return c
}

// Configure replaces the persistence options. Empty key names take their
// defaults.
func (c *TabsController) Configure(opts Options) {
	def := DefaultOptions()
	if opts.StorageKey == "" {
		opts.StorageKey = def.StorageKey
	}
	if opts.QueryKey == "" {
		opts.QueryKey = def.QueryKey
	}
	c.opts = opts
}

// OnSelectTab registers handler and returns a function that unregisters it.
func (c *TabsController) OnSelectTab(handler Handler) func() {
	e := &handlerEntry{fn: handler}
	c.handlers = append(c.handlers, e)
	return func() {
		for i, h := range c.handlers {
			if h == e {
				c.handlers = append(c.handlers[:i:i], c.handlers[i+1:]...)
				return
			}
		}
	}
}

// SelectTab selects tab in every block of its group and persists it.
func (c *TabsController) SelectTab(tab Tab) {
	c.selectTab(tab, nil, true)
}

// SelectTabByID selects the tab whose header carries id.
func (c *TabsController) SelectTabByID(id string, opts SelectTabByIDOptions) {
	target := c.doc.Find(selTab, func(n *html.Node) bool {
		return dom.GetAttr(n, tabs.TabDataID) == id
	})
	if target == nil {
		return
	}
	tab, ok := tabFromElement(target)
	if !ok {
		return
	}
	c.selectTab(tab, target, true)
	if opts.ScrollToElement {
		c.doc.Layout.ScrollIntoView(target)
	}
}

func (c *TabsController) selectTab(tab Tab, target *html.Node, persist bool) {
	if tab.Group == "" || tab.Key == "" {
		return
	}

	var (
		scrollParent *html.Node
		before       dom.Offset
	)
	if target != nil {
		if scrollParent = c.doc.Layout.ScrollParent(target); scrollParent != nil {
			before = c.doc.Layout.Offset(target, scrollParent)
		}
	}

	updated, variant := c.updateGroup(tab)
	if updated == 0 {
		return
	}
	if tab.Variant == "" {
		tab.Variant = variant
	}

	c.fireSelectTab(tab, target)
	if persist {
		c.persist(tab)
	}
	if scrollParent != nil {
		c.resetScroll(target, scrollParent, before)
	}
}

// resetScroll keeps target at the same place inside scrollParent after the
// layout above it changed.
func (c *TabsController) resetScroll(target, scrollParent *html.Node, before dom.Offset) {
	after := c.doc.Layout.Offset(target, scrollParent)
	top := after.Top - before.Top - (after.ScrollTop - before.ScrollTop)
	left := after.Left - before.Left - (after.ScrollLeft - before.ScrollLeft)
	c.doc.Layout.ScrollTo(scrollParent, after.ScrollLeft+left, after.ScrollTop+top)
}

func (c *TabsController) fireSelectTab(tab Tab, target *html.Node) {
	event := SelectedTabEvent{Tab: tab}
	if isDefaultGroup(tab.Group) {
		event.Tab.Group = ""
	}
	if target != nil {
		event.CurrentTabID = dom.GetAttr(target, tabs.TabDataID)
	}
	for _, h := range append([]*handlerEntry(nil), c.handlers...) {
		h.fn(event)
	}
}

func isDefaultGroup(group string) bool {
	return strings.HasPrefix(group, tabs.DefaultGroupPrefix)
}

func (c *TabsController) handleClick(e *dom.Event) {
	target := e.EffectiveTarget()
	if !dom.IsElement(target) {
		return
	}

	c.closeDropdowns(target)

	if sel := dom.Closest(target, selDropdownSelect); sel != nil {
		c.toggleDropdown(sel)
		return
	}

	el := dom.Closest(target, selTab)
	if el == nil {
		return
	}
	container := dom.Closest(el, selTabs)
	tab, ok := tabFromElement(el)
	if !ok {
		return
	}

	switch tab.Variant {
	case tabs.VariantRadio:
		c.clickRadio(tab, el)
	case tabs.VariantAccordion:
		c.clickAccordion(tab, el, container)
	case tabs.VariantDropdown:
		c.closeDropdown(container)
		if isActive(el) {
			return
		}
		c.selectTab(tab, el, true)
	default:
		if dom.GetAttr(el, tabs.TabActiveKey) == "true" {
			return
		}
		c.selectTab(tab, el, true)
	}
}

// clickRadio selects a radio tab across its group. A checked tab that was
// pre-selected by the author carries the forced flag; its first click
// unchecks it instead.
func (c *TabsController) clickRadio(tab Tab, el *html.Node) {
	forced := dom.HasAttr(el, tabs.TabForcedOpen)
	dom.RemoveAttr(el, tabs.TabForcedOpen)
	if !forced || !isActive(el) {
		c.selectTab(tab, el, true)
		return
	}
	if c.uncheckRadio(tab) > 0 {
		c.fireSelectTab(tab, el)
	}
}

// clickAccordion toggles one accordion item independently of its siblings.
func (c *TabsController) clickAccordion(tab Tab, el, container *html.Node) {
	open := toggleAccordion(container, el)
	c.fireSelectTab(tab, el)
	if !open {
		return
	}
	c.persist(tab)
	c.doc.Scheduler.Defer(func() {
		c.doc.Layout.ScrollIntoView(el)
	})
}

func (c *TabsController) handleKeyDown(e *dom.Event) {
	var step int
	switch e.Key {
	case "ArrowLeft", "ArrowUp":
		step = -1
	case "ArrowRight", "ArrowDown":
		step = 1
	default:
		return
	}

	target := e.EffectiveTarget()
	if !isListTab(target) {
		return
	}
	list := dom.Closest(target, selTabList)
	nodes := dom.Children(list, selTab)
	if len(nodes) <= 1 {
		return
	}
	current := -1
	for i, n := range nodes {
		if n == target {
			current = i
			break
		}
	}
	if current < 0 {
		return
	}

	next := nodes[(current+step+len(nodes))%len(nodes)]
	if tab, ok := tabFromElement(next); ok {
		c.selectTab(tab, next, true)
	}
	c.doc.Focus(next)
}

// isListTab reports whether n is a header inside a tab strip.
func isListTab(n *html.Node) bool {
	if !dom.IsElement(n) || !selTab.Match(n) || dom.GetAttr(n, tabs.TabDataID) == "" {
		return false
	}
	list := dom.Closest(n, selTabList)
	return list != nil && dom.Closest(list, selTabs) != nil
}

// tabFromElement reads the selection a header or menu item stands for.
func tabFromElement(el *html.Node) (Tab, bool) {
	container := dom.Closest(el, selTabs)
	if container == nil {
		return Tab{}, false
	}
	key := dom.GetAttr(el, tabs.TabDataKey)
	group := dom.GetAttr(container, tabs.GroupDataKey)
	if key == "" || group == "" {
		return Tab{}, false
	}
	return Tab{Group: group, Key: key, Variant: containerVariant(container)}, true
}

func containerVariant(container *html.Node) tabs.Variant {
	if v, ok := tabs.ParseVariant(dom.GetAttr(container, tabs.TabDataVariant)); ok {
		return v
	}
	return tabs.VariantRegular
}

func isActive(n *html.Node) bool {
	return dom.HasClass(n, tabs.ActiveClassName)
}
