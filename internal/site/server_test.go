package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/mdtabs/internal/controller"
	"github.com/ziadkadry99/mdtabs/internal/dom"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

func previewSite(t *testing.T) *PreviewServer {
	t.Helper()
	cfg := newSite(t, map[string]string{
		"index.md":       installPage,
		"guide/setup.md": setupPage,
	})
	generate(t, cfg)
	return NewPreviewServer(PreviewConfig{Dir: cfg.OutputDir})
}

func get(t *testing.T, s *PreviewServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

// activeKey returns the key of the active header of the first tab block.
func activeKey(t *testing.T, body string) string {
	t.Helper()
	doc, err := dom.ParseString(body)
	if err != nil {
		t.Fatal(err)
	}
	h := doc.Find(cascadia.MustCompile("."+tabs.TabClassName), func(n *html.Node) bool {
		return dom.HasClass(n, tabs.ActiveClassName)
	})
	if h == nil {
		return ""
	}
	return dom.GetAttr(h, tabs.TabDataKey)
}

func TestHealthCheck(t *testing.T) {
	s := NewPreviewServer(PreviewConfig{Dir: t.TempDir()})

	w := get(t, s, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	s := NewPreviewServer(PreviewConfig{Dir: t.TempDir(), AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestServeStaticPage(t *testing.T) {
	s := previewSite(t)

	w := get(t, s, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := activeKey(t, w.Body.String()); got != "linux" {
		t.Errorf("active tab = %q, want linux", got)
	}

	w = get(t, s, "/_assets/tabs-extension.js")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Errorf("runtime script: status %d, %d bytes", w.Code, w.Body.Len())
	}
}

func TestServeAppliesQuerySelection(t *testing.T) {
	s := previewSite(t)

	for _, target := range []string{"/?tabs=os_windows_regular", "/index.html?tabs=os_windows_regular"} {
		w := get(t, s, target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", target, ct)
		}
		if got := activeKey(t, w.Body.String()); got != "windows" {
			t.Errorf("%s: active tab = %q, want windows", target, got)
		}
	}
}

func TestServeIgnoresUnknownSelection(t *testing.T) {
	s := previewSite(t)

	w := get(t, s, "/?tabs=os_macos_regular,lang_go_radio")
	if got := activeKey(t, w.Body.String()); got != "linux" {
		t.Errorf("active tab = %q, want linux", got)
	}
}

func TestServeMissingPage(t *testing.T) {
	s := previewSite(t)

	if w := get(t, s, "/missing.html?tabs=os_windows_regular"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGroupsEndpoint(t *testing.T) {
	s := previewSite(t)

	w := get(t, s, "/api/groups/index.html?tabs=os_windows_regular,other_x_regular")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body groupsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Page != "/index.html" {
		t.Errorf("page = %q", body.Page)
	}
	if !reflect.DeepEqual(body.Groups, []string{"os"}) {
		t.Errorf("groups = %v, want [os]", body.Groups)
	}
	want := controller.TabsHistory{"os": {Key: "windows", Variant: tabs.VariantRegular}}
	if !reflect.DeepEqual(body.Tabs, want) {
		t.Errorf("tabs = %+v, want %+v", body.Tabs, want)
	}
}

func TestGroupsEndpointErrors(t *testing.T) {
	s := previewSite(t)

	if w := get(t, s, "/api/groups/style.css"); w.Code != http.StatusBadRequest {
		t.Errorf("non-page: expected 400, got %d", w.Code)
	}
	if w := get(t, s, "/api/groups/nope.html"); w.Code != http.StatusNotFound {
		t.Errorf("missing page: expected 404, got %d", w.Code)
	}
}

func TestPageName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "/index.html"},
		{"/guide/", "/guide/index.html"},
		{"/guide/setup.html", "/guide/setup.html"},
	}
	for _, tt := range tests {
		if got := pageName(tt.in); got != tt.want {
			t.Errorf("pageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
