package token

import "testing"

func TestAttrSetKeepsOrder(t *testing.T) {
	tok := New("tab_open", "div", 1)
	tok.AttrSet("class", "yfm-tab")
	tok.AttrSet("role", "tab")
	tok.AttrSet("class", "other")

	if len(tok.Attrs) != 2 {
		t.Fatalf("attrs = %d, want 2", len(tok.Attrs))
	}
	if tok.Attrs[0].Name != "class" || tok.Attrs[0].Value != "other" {
		t.Errorf("attrs[0] = %+v, want class=other", tok.Attrs[0])
	}
}

func TestAttrJoin(t *testing.T) {
	tok := New("tab_open", "div", 1)
	tok.AttrJoin("class", "yfm-tab")
	tok.AttrJoin("class", "active")

	got, _ := tok.AttrGet("class")
	if got != "yfm-tab active" {
		t.Errorf("class = %q, want %q", got, "yfm-tab active")
	}
}

func TestJoinClasses(t *testing.T) {
	if got := JoinClasses("a", "", " b ", "c"); got != "a b c" {
		t.Errorf("JoinClasses = %q, want %q", got, "a b c")
	}
}

func TestEnvAddScriptIsIdempotent(t *testing.T) {
	env := NewEnv()
	env.AddScript("_assets/tabs.js")
	env.AddScript("_assets/tabs.js")
	env.AddStyle("_assets/tabs.css")

	if len(env.Meta.Script) != 1 {
		t.Errorf("scripts = %v, want one entry", env.Meta.Script)
	}
	if len(env.Meta.Style) != 1 {
		t.Errorf("styles = %v, want one entry", env.Meta.Style)
	}
}
