package tabs

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

// ErrMultipleActive is returned when more than one tab of a block carries the
// {selected} marker.
var ErrMultipleActive = errors.New("unable to render tabs with more than 1 active element")

// generateOptions are the per-block inputs of a variant generator.
type generateOptions struct {
	containerClasses string
	group            string
	variant          Variant
	slugger          *Slugger
}

// tabView holds the values derived from one tab for rendering.
type tabView struct {
	*Tab
	id       string
	key      string
	name     string
	panelID  string
	selected bool
}

type generator func(views []tabView, opts generateOptions) []*token.Token

var generators = map[Variant]generator{
	VariantRegular:   regular,
	VariantRadio:     radio,
	VariantDropdown:  dropdown,
	VariantAccordion: accordion,
}

// generate turns extracted tabs into the tokens of opts.variant.
func generate(tabs []*Tab, opts generateOptions) ([]*token.Token, error) {
	views := make([]tabView, len(tabs))
	selected := 0
	for i, tab := range tabs {
		views[i] = tabView{
			Tab:      tab,
			id:       opts.slugger.TabID(tab.Name),
			key:      TabKey(tab.Name),
			name:     DisplayName(tab.Name),
			panelID:  GenerateID(),
			selected: IsSelected(tab.Name),
		}
		if views[i].selected {
			selected++
		}
	}
	if selected > 1 {
		return nil, fmt.Errorf("tab block at line %d: %w", firstLine(tabs)+1, ErrMultipleActive)
	}

	gen, ok := generators[opts.variant]
	if !ok {
		gen = regular
	}
	return gen(views, opts), nil
}

// blockSpan is the source range from the first tab's item to the last one's.
func blockSpan(views []tabView) *token.LineRange {
	if len(views) == 0 {
		return nil
	}
	first, last := views[0].ListItem, views[len(views)-1].ListItem
	if first == nil || last == nil || first.Map == nil || last.Map == nil {
		return nil
	}
	return &token.LineRange{Start: first.Map.Start, End: last.Map.End}
}

// contentMap spans the source lines of a tab body.
func contentMap(tokens []*token.Token) *token.LineRange {
	var first, last *token.LineRange
	for _, t := range tokens {
		if t.Map != nil {
			if first == nil {
				first = t.Map
			}
			last = t.Map
		}
	}
	if first == nil {
		return nil
	}
	return &token.LineRange{Start: first.Start, End: last.End}
}

func firstLine(tabs []*Tab) int {
	for _, t := range tabs {
		if t.ListItem != nil && t.ListItem.Map != nil {
			return t.ListItem.Map.Start
		}
	}
	return 0
}

func itemMap(v tabView) *token.LineRange {
	if v.ListItem == nil {
		return nil
	}
	return v.ListItem.Map
}

func itemMarkup(v tabView) string {
	if v.ListItem == nil {
		return ""
	}
	return v.ListItem.Markup
}

func container(typ string, opts generateOptions, variantClass string) (open, closing *token.Token) {
	open = token.NewBlock(typ+"_open", "div", 1)
	closing = token.NewBlock(typ+"_close", "div", -1)
	open.AttrSet("class", token.JoinClasses(TabsClassName, opts.containerClasses, variantClass))
	open.AttrSet(GroupDataKey, opts.group)
	open.AttrSet(TabDataVariant, string(opts.variant))
	return open, closing
}

// panel wraps a tab body in a tabpanel labelled by its header.
func panel(v tabView, active bool) []*token.Token {
	open := token.NewBlock("tab-panel_open", "div", 1)
	open.Map = contentMap(v.Tokens)
	open.AttrSet("id", v.panelID)
	open.AttrSet("class", TabPanelClassName)
	open.AttrSet("role", "tabpanel")
	open.AttrSet("aria-labelledby", v.id)
	open.AttrSet("data-title", v.name)
	if active {
		open.AttrJoin("class", ActiveClassName)
	}

	out := make([]*token.Token, 0, len(v.Tokens)+2)
	out = append(out, open)
	out = append(out, v.Tokens...)
	return append(out, token.NewBlock("tab-panel_close", "div", -1))
}

// header returns the open token of a tab header with the attributes shared
// by the regular, radio and accordion variants.
func header(v tabView, classes string, tabindex string) *token.Token {
	open := token.NewBlock("tab_open", "div", 1)
	open.Map = itemMap(v)
	open.Markup = itemMarkup(v)
	open.AttrSet(TabDataID, v.id)
	open.AttrSet(TabDataKey, v.key)
	open.AttrSet("class", classes)
	open.AttrSet("role", "tab")
	open.AttrSet("aria-controls", v.panelID)
	open.AttrSet("aria-selected", "false")
	open.AttrSet("tabindex", tabindex)
	open.AttrSet(TabActiveKey, "false")
	return open
}

func markActive(open *token.Token) {
	open.AttrJoin("class", ActiveClassName)
	open.AttrSet("aria-selected", "true")
	open.AttrSet(TabActiveKey, "true")
}

func firstTabIndex(i int) string {
	if i == 0 {
		return "0"
	}
	return "-1"
}

// regular renders a tab strip followed by the panels. Without an explicit
// {selected} marker the first tab is active.
func regular(views []tabView, opts generateOptions) []*token.Token {
	open, closing := container("tabs", opts, "")
	listOpen := token.NewBlock("tab-list_open", "div", 1)
	listClose := token.NewBlock("tab-list_close", "div", -1)
	span := blockSpan(views)
	open.Map = span
	listOpen.Map = span
	listOpen.AttrSet("class", TabsListClassName)
	listOpen.AttrSet("role", "tablist")

	hasSelected := false
	for _, v := range views {
		hasSelected = hasSelected || v.selected
	}

	var headers, panels []*token.Token
	for i, v := range views {
		active := v.selected
		if !hasSelected {
			active = i == 0
		}
		tabindex := "-1"
		if active {
			tabindex = "0"
		}

		tabOpen := header(v, token.JoinClasses(TabClassName, TabGroupClassName), tabindex)
		if active {
			markActive(tabOpen)
		}
		headers = append(headers, tabOpen, token.NewText(v.name), token.NewBlock("tab_close", "div", -1))
		panels = append(panels, panel(v, active)...)
	}

	out := make([]*token.Token, 0, len(headers)+len(panels)+4)
	out = append(out, open, listOpen)
	out = append(out, headers...)
	out = append(out, listClose)
	out = append(out, panels...)
	return append(out, closing)
}

// radio renders header/panel pairs as siblings; each header holds a native
// radio input.
func radio(views []tabView, opts generateOptions) []*token.Token {
	open, closing := container("tabs", opts, RadioClassName)
	open.Map = blockSpan(views)

	out := []*token.Token{open}
	for i, v := range views {
		tabOpen := header(v, token.JoinClasses(TabClassName, TabGroupClassName, VerticalTabClassName), firstTabIndex(i))
		tabOpen.AttrSet(TabDataVertical, "true")

		input := token.NewBlock("tab-input", "input", 0)
		input.AttrJoin("class", "radio")
		input.AttrSet("type", "radio")

		if v.selected {
			markActive(tabOpen)
			tabOpen.AttrSet(TabForcedOpen, "true")
			input.AttrSet("checked", "true")
		}

		out = append(out,
			tabOpen,
			input,
			token.New("tab-label_open", "label", 1),
			token.NewText(v.name),
			token.New("tab-label_close", "label", -1),
			token.NewBlock("tab_close", "div", -1),
		)
		out = append(out, panel(v, v.selected)...)
	}
	return append(out, closing)
}

// dropdown renders a select trigger, a menu of items and the panels.
func dropdown(views []tabView, opts generateOptions) []*token.Token {
	open, closing := container("dropdown", opts, DropdownClassName)
	open.Map = blockSpan(views)

	var active *tabView
	for i := range views {
		if views[i].selected {
			active = &views[i]
		}
	}

	selectOpen := token.NewBlock("dropdown-select_open", "div", 1)
	selectOpen.AttrSet("role", "tablist")
	selectOpen.AttrSet("class", DropdownSelectClass)
	label := "-"
	if active != nil {
		selectOpen.AttrJoin("class", DropdownFilledClass)
		label = active.name
	}

	out := []*token.Token{
		open,
		selectOpen,
		token.NewText(label),
		token.NewBlock("dropdown-select_close", "div", -1),
	}

	menuOpen := token.NewBlock("dropdown-menu_open", "ul", 1)
	menuOpen.AttrSet("class", DropdownMenuClassName)
	out = append(out, menuOpen)
	for _, v := range views {
		item := token.NewBlock("dropdown-menu-item_open", "li", 1)
		item.Map = itemMap(v)
		classes := TabClassName
		if v.selected {
			classes = token.JoinClasses(TabClassName, ActiveClassName)
		}
		item.AttrSet("class", classes)
		item.AttrSet(TabDataID, v.id)
		item.AttrSet(TabDataKey, v.key)
		item.AttrSet("role", "tab")
		item.AttrSet("aria-controls", v.panelID)
		item.AttrSet("aria-selected", fmt.Sprint(v.selected))
		out = append(out, item, token.NewText(v.name), token.NewBlock("dropdown-menu-item_close", "li", -1))
	}
	out = append(out, token.NewBlock("dropdown-menu_close", "ul", -1))

	for _, v := range views {
		out = append(out, panel(v, v.selected)...)
	}
	return append(out, closing)
}

// accordion renders independent expandable units, one per tab.
func accordion(views []tabView, opts generateOptions) []*token.Token {
	open, closing := container("tabs", opts, AccordionClassName)
	open.Map = blockSpan(views)

	out := []*token.Token{open}
	for i, v := range views {
		tabOpen := header(v, token.JoinClasses(TabClassName, TabGroupClassName), firstTabIndex(i))
		body := panel(v, v.selected)
		if v.selected {
			markActive(tabOpen)
			body[0].AttrSet(TabForcedOpen, "true")
		}
		out = append(out, tabOpen, token.NewText(v.name), token.NewBlock("tab_close", "div", -1))
		out = append(out, body...)
	}
	return append(out, closing)
}
