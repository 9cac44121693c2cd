package controller

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/ziadkadry99/mdtabs/internal/dom"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

func TestFormatQuery(t *testing.T) {
	tests := []struct {
		name string
		in   TabsHistory
		want string
	}{
		{"empty", TabsHistory{}, ""},
		{"single", TabsHistory{"os": {Key: "linux", Variant: tabs.VariantRegular}}, "os_linux_regular"},
		{
			"sorted",
			TabsHistory{
				"os":   {Key: "linux", Variant: tabs.VariantRegular},
				"lang": {Key: "go", Variant: tabs.VariantDropdown},
			},
			"lang_go_dropdown,os_linux_regular",
		},
		{
			"escaped",
			TabsHistory{"my_group": {Key: "c%23", Variant: tabs.VariantRadio}},
			"my%5Fgroup_c%2523_radio",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQuery(tt.in); got != tt.want {
				t.Errorf("FormatQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in   string
		want TabsHistory
	}{
		{"", TabsHistory{}},
		{"os_linux_regular", TabsHistory{"os": {Key: "linux", Variant: tabs.VariantRegular}}},
		{"my%5Fgroup_c%2523_radio", TabsHistory{"my_group": {Key: "c%23", Variant: tabs.VariantRadio}}},
		{"os_linux_bogus,broken,lang_go_accordion", TabsHistory{"lang": {Key: "go", Variant: tabs.VariantAccordion}}},
		{"_linux_regular,os__regular", TabsHistory{}},
		{"os_linux_regular,os_windows_regular", TabsHistory{"os": {Key: "windows", Variant: tabs.VariantRegular}}},
	}
	for _, tt := range tests {
		if got := ParseQuery(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestQueryRoundTripThroughURL(t *testing.T) {
	doc, c := newPage(t, groupedSource)
	h := TabsHistory{
		"os":      {Key: "c%2b%2b", Variant: tabs.VariantRegular},
		"a,b_c d": {Key: "x", Variant: tabs.VariantDropdown},
	}
	c.UpdateQueryParamWithTabs(h)

	u, err := url.Parse(doc.Location.String())
	if err != nil {
		t.Fatal(err)
	}
	_, c2 := newPage(t, groupedSource, dom.WithURL(u))
	if got := c2.GetTabsFromSearchQuery(); !reflect.DeepEqual(got, h) {
		t.Errorf("query history = %+v, want %+v", got, h)
	}
}

func TestGetTabsFromLocalStorageInvalid(t *testing.T) {
	doc, c := newPage(t, groupedSource)
	if err := doc.Storage.SetItem("tabsHistory", "{not json"); err != nil {
		t.Fatal(err)
	}
	if got := c.GetTabsFromLocalStorage(); len(got) != 0 {
		t.Errorf("history = %+v, want empty", got)
	}
}

func TestRestoreSavedQueryWins(t *testing.T) {
	src := groupedSource + "\n" + variantSource(tabs.VariantDropdown, "lang")
	u, _ := url.Parse("/page?tabs=os_windows_regular")
	storage := dom.NewMemoryStorage()
	_ = storage.SetItem("tabsHistory", `{"os":{"key":"linux","variant":"regular"},"lang":{"key":"three","variant":"dropdown"}}`)

	doc, c := newPage(t, src, dom.WithURL(u), dom.WithStorage(storage))
	c.RestoreSaved()

	for _, h := range headersByKey(doc, "windows") {
		assertActive(t, doc, h, true)
	}
	assertActive(t, doc, header(t, doc, "three"), true)
}

func TestClearTabsPreferred(t *testing.T) {
	doc, c := newPage(t, groupedSource)
	doc.Click(header(t, doc, "windows"))

	c.ClearTabsPreferred()

	if _, ok := doc.Storage.GetItem("tabsHistory"); ok {
		t.Error("storage not cleared")
	}
	if got := doc.Location.Query("tabs"); got != "" {
		t.Errorf("query = %q, want empty", got)
	}
}

func TestCurrentPageGroups(t *testing.T) {
	src := groupedSource + "\n" + variantSource(tabs.VariantRadio, "lang") + "\n" + variantSource(tabs.VariantRegular, "")
	_, c := newPage(t, src)

	if got, want := c.GetCurrentPageTabGroups(), []string{"os", "lang"}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}

	h := TabsHistory{
		"os":    {Key: "linux", Variant: tabs.VariantRegular},
		"other": {Key: "x", Variant: tabs.VariantRegular},
	}
	want := TabsHistory{"os": {Key: "linux", Variant: tabs.VariantRegular}}
	if got := c.GetCurrentPageTabHistory(h); !reflect.DeepEqual(got, want) {
		t.Errorf("page history = %+v, want %+v", got, want)
	}
}

func TestPersistKeepsOtherPagesInStorageOnly(t *testing.T) {
	storage := dom.NewMemoryStorage()
	_ = storage.SetItem("tabsHistory", `{"other":{"key":"x","variant":"regular"}}`)
	doc, c := newPage(t, groupedSource, dom.WithStorage(storage))

	doc.Click(header(t, doc, "windows"))

	want := TabsHistory{
		"other": {Key: "x", Variant: tabs.VariantRegular},
		"os":    {Key: "windows", Variant: tabs.VariantRegular},
	}
	if got := c.GetTabsFromLocalStorage(); !reflect.DeepEqual(got, want) {
		t.Errorf("storage = %+v, want %+v", got, want)
	}
	if got := doc.Location.Query("tabs"); got != "os_windows_regular" {
		t.Errorf("query = %q, want os_windows_regular", got)
	}
}

func TestConfigureDisablesChannels(t *testing.T) {
	doc, c := newPage(t, groupedSource)
	c.Configure(Options{LocalStorage: true, StorageKey: "prefs"})

	doc.Click(header(t, doc, "windows"))

	if _, ok := doc.Storage.GetItem("prefs"); !ok {
		t.Error("custom storage key not written")
	}
	if _, ok := doc.Storage.GetItem("tabsHistory"); ok {
		t.Error("default storage key written")
	}
	if got := doc.Location.Query("tabs"); got != "" {
		t.Errorf("query = %q, want empty with query persistence off", got)
	}
	if got := c.GetTabsFromSearchQuery(); len(got) != 0 {
		t.Errorf("query history = %+v, want empty", got)
	}
}
