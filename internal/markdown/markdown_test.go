package markdown

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

func TestTokenizeHeadingAndParagraph(t *testing.T) {
	tokens := NewTokenizer().TokenizeString("# Title\n\nHello *world*\n")

	want := []string{
		"heading_open", "inline", "heading_close",
		"paragraph_open", "inline", "paragraph_close",
	}
	if got := token.Types(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if tokens[0].Tag != "h1" {
		t.Errorf("heading tag = %q, want h1", tokens[0].Tag)
	}
	if tokens[1].Content != "Title" {
		t.Errorf("heading content = %q, want Title", tokens[1].Content)
	}
	if tokens[1].Level != 1 {
		t.Errorf("inline level = %d, want 1", tokens[1].Level)
	}
	if tokens[3].Map == nil || tokens[3].Map.Start != 2 || tokens[3].Map.End != 3 {
		t.Errorf("paragraph map = %+v, want [2,3)", tokens[3].Map)
	}
}

func TestTokenizeTightList(t *testing.T) {
	tokens := NewTokenizer().TokenizeString("- a\n- b\n")

	want := []string{
		"bullet_list_open",
		"list_item_open", "paragraph_open", "inline", "paragraph_close", "list_item_close",
		"list_item_open", "paragraph_open", "inline", "paragraph_close", "list_item_close",
		"bullet_list_close",
	}
	if got := token.Types(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if !tokens[2].Hidden {
		t.Error("tight list paragraph should be hidden")
	}
	if tokens[1].Level != 1 || tokens[2].Level != 2 {
		t.Errorf("levels = %d/%d, want 1/2", tokens[1].Level, tokens[2].Level)
	}
	if tokens[1].Map == nil || tokens[1].Map.Start != 0 {
		t.Errorf("list item map = %+v, want start 0", tokens[1].Map)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "Hello *world*\n", "<p>Hello <em>world</em></p>\n"},
		{"tight list", "- a\n- b\n", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"},
		{"heading", "## Two\n", "<h2>Two</h2>\n"},
		{"code span", "use `x < y`\n", "<p>use <code>x &lt; y</code></p>\n"},
		{"link", "[go](https://go.dev)\n", "<p><a href=\"https://go.dev\">go</a></p>\n"},
	}

	tokenizer := NewTokenizer()
	renderer := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.Render(tokenizer.TokenizeString(tt.src))
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFence(t *testing.T) {
	src := "```go\nfmt.Println(\"<hi>\")\n```\n"
	tokens := NewTokenizer().TokenizeString(src)
	if len(tokens) != 1 || tokens[0].Type != "fence" {
		t.Fatalf("types = %v, want [fence]", token.Types(tokens))
	}
	if tokens[0].Info != "go" {
		t.Errorf("info = %q, want go", tokens[0].Info)
	}

	plain, err := NewRenderer().Render(tokens)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(plain, `class="language-go"`) || !strings.Contains(plain, "&lt;hi&gt;") {
		t.Errorf("plain fence = %q", plain)
	}

	highlighted, err := NewRenderer(WithHighlighting("github")).Render(tokens)
	if err != nil {
		t.Fatalf("Render highlighted: %v", err)
	}
	if !strings.Contains(highlighted, "<pre") {
		t.Errorf("highlighted fence missing <pre>: %q", highlighted)
	}
}

func TestRenderTableFallsBackToGoldmark(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	got, err := NewRenderer().Render(NewTokenizer().TokenizeString(src))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "<table>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestRenderGeneratedAttributes(t *testing.T) {
	open := token.NewBlock("tabs_open", "div", 1)
	open.AttrSet("class", "yfm-tabs")
	open.AttrSet("data-title", `a "quoted" <title>`)
	tokens := []*token.Token{open, token.NewText("x"), token.NewBlock("tabs_close", "div", -1)}

	got, err := NewRenderer().Render(tokens)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "<div class=\"yfm-tabs\" data-title=\"a &quot;quoted&quot; &lt;title&gt;\">x</div>\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
