package tabs

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeUsesMarkupNames(t *testing.T) {
	data, err := fs.ReadFile(runtimeAssets, "index.js")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	src := string(data)

	names := []string{
		TabsClassName, TabClassName, TabPanelClassName, TabsListClassName,
		DropdownMenuClassName, DropdownSelectClass, DropdownFilledClass,
		TabActiveKey, GroupDataKey, TabDataKey, TabDataVariant, TabDataID,
		TabForcedOpen, DefaultGroupPrefix,
		"tabsHistory",
	}
	for _, name := range names {
		if !strings.Contains(src, "'"+name+"'") {
			t.Errorf("runtime does not reference %q", name)
		}
	}
	for _, v := range Variants {
		if !strings.Contains(src, "'"+string(v)+"'") {
			t.Errorf("runtime does not know variant %q", v)
		}
	}
}

func TestRuntimeKeepsRovingTabIndex(t *testing.T) {
	data, err := fs.ReadFile(runtimeAssets, "index.js")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"'tabindex'", "getCurrentPageTabHistory(stored)", "scrollParent(target)"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("runtime is missing %s", want)
		}
	}
}
