package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tabsSource = `{% list tabs group=os %}

- Linux

  apt install tool

- Windows

  choco install tool

{% endlist %}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "page.md")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "mdtabs dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderCommand(t *testing.T) {
	src := writeSource(t, tabsSource)

	out, _, err := execute(t, "render", "--tokens=false", "--meta=false", src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `class="yfm-tabs`) || !strings.Contains(out, `data-diplodoc-key="windows"`) {
		t.Errorf("unexpected HTML:\n%s", out)
	}
	if _, err := os.Stat("_assets"); err == nil {
		t.Error("render bundled the runtime")
	}
}

func TestRenderCommandTokens(t *testing.T) {
	src := writeSource(t, tabsSource)

	out, _, err := execute(t, "render", "--tokens=true", "--meta=false", src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var tokens []struct {
		Type string
	}
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("tokens are not JSON: %v", err)
	}
	if len(tokens) == 0 || tokens[0].Type != "tabs_open" {
		t.Errorf("first token = %+v", tokens)
	}
}

func TestRenderCommandWarnings(t *testing.T) {
	src := writeSource(t, "{% list tabs %}\n\n- A\n\n  a\n")

	_, errOut, err := execute(t, "render", "--tokens=false", "--meta=false", src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(errOut, "YFM005") {
		t.Errorf("stderr = %q, want an unterminated block warning", errOut)
	}
}
