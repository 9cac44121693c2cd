package controller

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/mdtabs/internal/dom"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

// block is one rendered tab container with its headers and panels paired by
// index.
type block struct {
	container *html.Node
	variant   tabs.Variant
	headers   []*html.Node
	panels    []*html.Node
}

func newBlock(container *html.Node) block {
	b := block{
		container: container,
		variant:   containerVariant(container),
		panels:    dom.Children(container, selPanel),
	}
	switch b.variant {
	case tabs.VariantRegular:
		if list := dom.Child(container, selTabList); list != nil {
			b.headers = dom.Children(list, selTab)
		}
	case tabs.VariantDropdown:
		if menu := dom.Child(container, selDropdownMenu); menu != nil {
			b.headers = dom.Children(menu, selTab)
		}
	default:
		b.headers = dom.Children(container, selTab)
	}
	return b
}

func (b block) indexOf(key string) int {
	for i, h := range b.headers {
		if dom.GetAttr(h, tabs.TabDataKey) == key {
			return i
		}
	}
	return -1
}

func (b block) indexOfNode(n *html.Node) int {
	for i, h := range b.headers {
		if h == n {
			return i
		}
	}
	return -1
}

func (b block) panel(i int) *html.Node {
	if i < len(b.panels) {
		return b.panels[i]
	}
	return nil
}

// blocks returns the containers of group, limited to variant unless it is
// empty.
func (c *TabsController) blocks(group string, variant tabs.Variant) []block {
	var out []block
	for _, n := range c.doc.QueryAll(selTabs) {
		if dom.GetAttr(n, tabs.GroupDataKey) != group {
			continue
		}
		b := newBlock(n)
		if variant != "" && b.variant != variant {
			continue
		}
		out = append(out, b)
	}
	return out
}

// updateGroup applies tab to every matching block. It returns the number of
// blocks that changed and the variant of the first of them.
func (c *TabsController) updateGroup(tab Tab) (int, tabs.Variant) {
	var (
		updated int
		variant tabs.Variant
	)
	for _, b := range c.blocks(tab.Group, tab.Variant) {
		i := b.indexOf(tab.Key)
		if i < 0 {
			continue
		}
		var changed bool
		switch b.variant {
		case tabs.VariantRegular:
			changed = selectRegular(b, i)
		case tabs.VariantRadio:
			changed = selectRadio(b, i)
		case tabs.VariantDropdown:
			changed = selectDropdown(b, i)
		case tabs.VariantAccordion:
			changed = openAccordion(b, tab.Key)
		}
		if changed {
			if updated == 0 {
				variant = b.variant
			}
			updated++
		}
	}
	return updated, variant
}

// setHeader updates the state attributes of a header together with its
// panel.
func setHeader(header, panel *html.Node, active bool) {
	dom.ToggleClass(header, tabs.ActiveClassName, active)
	dom.SetAttr(header, "aria-selected", strconv.FormatBool(active))
	if dom.HasAttr(header, tabs.TabActiveKey) {
		dom.SetAttr(header, tabs.TabActiveKey, strconv.FormatBool(active))
	}
	if panel != nil {
		dom.ToggleClass(panel, tabs.ActiveClassName, active)
	}
}

func selectRegular(b block, target int) bool {
	if dom.GetAttr(b.headers[target], tabs.TabActiveKey) == "true" {
		return false
	}
	for i, h := range b.headers {
		active := i == target
		setHeader(h, b.panel(i), active)
		tabindex := "-1"
		if active {
			tabindex = "0"
		}
		dom.SetAttr(h, "tabindex", tabindex)
	}
	return true
}

func setRadio(header, panel *html.Node, on bool) {
	setHeader(header, panel, on)
	if input := dom.Child(header, selRadioInput); input != nil {
		if on {
			dom.SetAttr(input, "checked", "true")
		} else {
			dom.RemoveAttr(input, "checked")
		}
	}
}

func selectRadio(b block, target int) bool {
	if isActive(b.headers[target]) {
		return false
	}
	for i, h := range b.headers {
		setRadio(h, b.panel(i), i == target)
	}
	return true
}

// uncheckRadio clears the checked item carrying tab.Key in every radio block
// of the group. It returns the number of items cleared.
func (c *TabsController) uncheckRadio(tab Tab) int {
	cleared := 0
	for _, b := range c.blocks(tab.Group, tabs.VariantRadio) {
		i := b.indexOf(tab.Key)
		if i < 0 || !isActive(b.headers[i]) {
			continue
		}
		dom.RemoveAttr(b.headers[i], tabs.TabForcedOpen)
		setRadio(b.headers[i], b.panel(i), false)
		cleared++
	}
	return cleared
}

func selectDropdown(b block, target int) bool {
	if isActive(b.headers[target]) {
		return false
	}
	for i, h := range b.headers {
		setHeader(h, b.panel(i), i == target)
	}
	if sel := dom.Child(b.container, selDropdownSelect); sel != nil {
		dom.SetTextContent(sel, dom.TextContent(b.headers[target]))
		dom.AddClass(sel, tabs.DropdownFilledClass)
	}
	return true
}

// openAccordion opens every item of b carrying key.
func openAccordion(b block, key string) bool {
	changed := false
	for i, h := range b.headers {
		if dom.GetAttr(h, tabs.TabDataKey) != key || isActive(h) {
			continue
		}
		setHeader(h, b.panel(i), true)
		changed = true
	}
	return changed
}

// toggleAccordion flips the accordion item el and reports whether it is now
// open.
func toggleAccordion(container, el *html.Node) bool {
	b := newBlock(container)
	i := b.indexOfNode(el)
	if i < 0 {
		return false
	}
	open := !isActive(el)
	setHeader(el, b.panel(i), open)
	if !open {
		if p := b.panel(i); p != nil {
			dom.RemoveAttr(p, tabs.TabForcedOpen)
		}
	}
	return open
}

func (c *TabsController) toggleDropdown(sel *html.Node) {
	open := !isActive(sel)
	dom.ToggleClass(sel, tabs.ActiveClassName, open)
	if container := dom.ParentElement(sel); container != nil {
		if menu := dom.Child(container, selDropdownMenu); menu != nil {
			dom.ToggleClass(menu, tabs.ActiveClassName, open)
		}
	}
}

func (c *TabsController) closeDropdown(container *html.Node) {
	if container == nil {
		return
	}
	if sel := dom.Child(container, selDropdownSelect); sel != nil {
		dom.RemoveClass(sel, tabs.ActiveClassName)
	}
	if menu := dom.Child(container, selDropdownMenu); menu != nil {
		dom.RemoveClass(menu, tabs.ActiveClassName)
	}
}

// closeDropdowns closes every open dropdown that does not contain target.
func (c *TabsController) closeDropdowns(target *html.Node) {
	for _, sel := range c.doc.QueryAll(selDropdownSelect) {
		if !isActive(sel) {
			continue
		}
		container := dom.ParentElement(sel)
		if container != nil && dom.Contains(container, target) {
			continue
		}
		c.closeDropdown(container)
	}
}
