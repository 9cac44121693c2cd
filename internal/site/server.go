package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/mdtabs/internal/controller"
	"github.com/ziadkadry99/mdtabs/internal/dom"
)

// PreviewConfig holds preview server settings.
type PreviewConfig struct {
	Port        int
	Dir         string // directory containing the built site
	AllowAll    bool   // allow all CORS origins
	Persistence controller.Options
}

// PreviewServer serves a built site. Pages requested with a tab selection in
// their query are rendered with that selection already applied.
type PreviewServer struct {
	cfg        PreviewConfig
	router     chi.Router
	httpServer *http.Server
}

// NewPreviewServer creates a preview server for cfg.Dir.
func NewPreviewServer(cfg PreviewConfig) *PreviewServer {
	def := controller.DefaultOptions()
	if cfg.Persistence.QueryKey == "" {
		cfg.Persistence.QueryKey = def.QueryKey
	}
	s := &PreviewServer{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

func (s *PreviewServer) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/api/groups/*", s.handleGroups)
	r.Get("/*", s.handlePage)

	return r
}

// Router returns the chi router.
func (s *PreviewServer) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *PreviewServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("Serving %s at http://localhost:%d", s.cfg.Dir, s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *PreviewServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// pageName maps a request path to a file below the site directory.
func pageName(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p + "index.html"
	}
	return p
}

// openPage parses a built page with the request URL as its location.
func (s *PreviewServer) openPage(r *http.Request, name string) (*dom.Document, error) {
	f, err := http.Dir(s.cfg.Dir).Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dom.Parse(f, dom.WithURL(r.URL))
}

// newController binds a controller that only reads and writes the query.
func (s *PreviewServer) newController(doc *dom.Document) *controller.TabsController {
	opts := s.cfg.Persistence
	opts.LocalStorage = false
	opts.QueryParam = true
	return controller.New(doc, opts)
}

func (s *PreviewServer) handlePage(w http.ResponseWriter, r *http.Request) {
	name := pageName(r.URL.Path)
	if path.Ext(name) != ".html" || r.URL.Query().Get(s.cfg.Persistence.QueryKey) == "" {
		http.FileServer(http.Dir(s.cfg.Dir)).ServeHTTP(w, r)
		return
	}

	doc, err := s.openPage(r, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.newController(doc).RestoreSaved()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w); err != nil {
		log.Printf("rendering %s: %v", name, err)
	}
}

// groupsResponse is the JSON response for /api/groups.
type groupsResponse struct {
	Page   string                 `json:"page"`
	Groups []string               `json:"groups"`
	Tabs   controller.TabsHistory `json:"tabs"`
}

// handleGroups lists the explicit tab groups of a page together with the
// selections the query would restore on it.
func (s *PreviewServer) handleGroups(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name := pageName("/" + chi.URLParam(r, "*"))
	if path.Ext(name) != ".html" {
		http.Error(w, `{"error":"not a page"}`, http.StatusBadRequest)
		return
	}
	doc, err := s.openPage(r, name)
	if err != nil {
		http.Error(w, `{"error":"page not found"}`, http.StatusNotFound)
		return
	}
	c := s.newController(doc)

	groups := c.GetCurrentPageTabGroups()
	if groups == nil {
		groups = []string{}
	}
	json.NewEncoder(w).Encode(groupsResponse{
		Page:   name,
		Groups: groups,
		Tabs:   c.GetCurrentPageTabHistory(c.GetTabsFromSearchQuery()),
	})
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
