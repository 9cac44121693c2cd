package controller

import (
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/ziadkadry99/mdtabs/internal/dom"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

// HistoryEntry is the saved selection of one group.
type HistoryEntry struct {
	Key     string       `json:"key"`
	Variant tabs.Variant `json:"variant"`
}

// TabsHistory maps a group to its saved selection.
type TabsHistory map[string]HistoryEntry

// Groups returns the groups of h in sorted order.
func (h TabsHistory) Groups() []string {
	groups := make([]string, 0, len(h))
	for g := range h {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// FormatQuery flattens h into comma separated group_key_variant triples.
// Group and key are escaped so they never contain '_' or ','.
func FormatQuery(h TabsHistory) string {
	parts := make([]string, 0, len(h))
	for _, g := range h.Groups() {
		e := h[g]
		parts = append(parts, escapePart(g)+"_"+escapePart(e.Key)+"_"+string(e.Variant))
	}
	return strings.Join(parts, ",")
}

// ParseQuery reads a value produced by FormatQuery. Malformed triples are
// skipped.
func ParseQuery(s string) TabsHistory {
	h := make(TabsHistory)
	for _, item := range strings.Split(s, ",") {
		fields := strings.Split(item, "_")
		if len(fields) != 3 {
			continue
		}
		group, err := url.QueryUnescape(fields[0])
		if err != nil || group == "" {
			continue
		}
		key, err := url.QueryUnescape(fields[1])
		if err != nil || key == "" {
			continue
		}
		variant, ok := tabs.ParseVariant(fields[2])
		if !ok {
			continue
		}
		h[group] = HistoryEntry{Key: key, Variant: variant}
	}
	return h
}

func escapePart(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "_", "%5F")
}

// GetTabsFromLocalStorage returns the saved history, or an empty one when
// local storage is disabled, empty or unreadable.
func (c *TabsController) GetTabsFromLocalStorage() TabsHistory {
	h := make(TabsHistory)
	if !c.opts.LocalStorage {
		return h
	}
	raw, ok := c.doc.Storage.GetItem(c.opts.StorageKey)
	if !ok || raw == "" {
		return h
	}
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return make(TabsHistory)
	}
	return h
}

// GetTabsFromSearchQuery returns the history carried by the page URL.
func (c *TabsController) GetTabsFromSearchQuery() TabsHistory {
	if !c.opts.QueryParam {
		return make(TabsHistory)
	}
	return ParseQuery(c.doc.Location.Query(c.opts.QueryKey))
}

// UpdateLocalStorageWithTabs replaces the saved history with h.
func (c *TabsController) UpdateLocalStorageWithTabs(h TabsHistory) {
	if !c.opts.LocalStorage {
		return
	}
	data, err := json.Marshal(h)
	if err != nil {
		return
	}
	_ = c.doc.Storage.SetItem(c.opts.StorageKey, string(data))
}

// UpdateQueryParamWithTabs mirrors h into the page URL. An empty history
// removes the parameter.
func (c *TabsController) UpdateQueryParamWithTabs(h TabsHistory) {
	if !c.opts.QueryParam {
		return
	}
	if len(h) == 0 {
		c.doc.Location.DeleteQuery(c.opts.QueryKey)
		return
	}
	c.doc.Location.SetQuery(c.opts.QueryKey, FormatQuery(h))
}

// ClearTabsPreferred removes every persisted selection.
func (c *TabsController) ClearTabsPreferred() {
	c.doc.Storage.RemoveItem(c.opts.StorageKey)
	c.doc.Location.DeleteQuery(c.opts.QueryKey)
}

// GetCurrentPageTabGroups returns the explicit groups rendered in the
// document, in document order.
func (c *TabsController) GetCurrentPageTabGroups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, n := range c.doc.QueryAll(selTabs) {
		g := dom.GetAttr(n, tabs.GroupDataKey)
		if g == "" || isDefaultGroup(g) || seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	return groups
}

// GetCurrentPageTabHistory keeps the entries of h whose group is rendered
// in the document.
func (c *TabsController) GetCurrentPageTabHistory(h TabsHistory) TabsHistory {
	out := make(TabsHistory)
	for _, g := range c.GetCurrentPageTabGroups() {
		if e, ok := h[g]; ok {
			out[g] = e
		}
	}
	return out
}

// RestoreTabs applies every entry of h. Entries for groups or keys missing
// from the document are ignored. Nothing is persisted.
func (c *TabsController) RestoreTabs(h TabsHistory) {
	for _, g := range h.Groups() {
		e := h[g]
		c.selectTab(Tab{Group: g, Key: e.Key, Variant: e.Variant}, nil, false)
	}
}

// RestoreSaved restores local storage state overridden by the URL query.
func (c *TabsController) RestoreSaved() {
	h := c.GetTabsFromLocalStorage()
	for g, e := range c.GetTabsFromSearchQuery() {
		h[g] = e
	}
	c.RestoreTabs(h)
}

// persist records a user selection. Auto-generated groups are skipped.
func (c *TabsController) persist(tab Tab) {
	if isDefaultGroup(tab.Group) {
		return
	}
	variant := tab.Variant
	if variant == "" {
		variant = tabs.VariantRegular
	}
	entry := HistoryEntry{Key: tab.Key, Variant: variant}

	stored := c.GetTabsFromLocalStorage()
	stored[tab.Group] = entry
	c.UpdateLocalStorageWithTabs(stored)

	query := c.GetTabsFromSearchQuery()
	for g, e := range c.GetCurrentPageTabHistory(stored) {
		query[g] = e
	}
	query[tab.Group] = entry
	c.UpdateQueryParamWithTabs(query)
}
