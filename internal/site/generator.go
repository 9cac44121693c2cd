// Package site builds static HTML pages from markdown sources with tab
// blocks and serves them for preview.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/mdtabs/internal/config"
	"github.com/ziadkadry99/mdtabs/internal/markdown"
	"github.com/ziadkadry99/mdtabs/internal/progress"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
	"github.com/ziadkadry99/mdtabs/internal/token"
	"github.com/ziadkadry99/mdtabs/internal/walker"
)

// SiteGenerator converts a tree of markdown sources into a static HTML site.
type SiteGenerator struct {
	cfg         *config.Config
	projectName string
	tokenizer   *markdown.Tokenizer
	renderer    *markdown.Renderer
	plugin      *tabs.Plugin
	reporter    progress.Reporter
	logger      *log.Logger
	tmpl        *template.Template
}

// Option configures a SiteGenerator.
type Option func(*SiteGenerator)

// WithReporter reports per-page progress to r.
func WithReporter(r progress.Reporter) Option {
	return func(g *SiteGenerator) { g.reporter = r }
}

// WithLogger sends build warnings to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(g *SiteGenerator) { g.logger = l }
}

// WithProjectName shows name in page titles and the sidebar.
func WithProjectName(name string) Option {
	return func(g *SiteGenerator) { g.projectName = name }
}

// Page describes one generated page. Paths are slash separated and relative
// to the source and output directories.
type Page struct {
	Source string
	Output string
	Title  string
	Tabs   bool
}

// Warning is a non-fatal problem found in a source file.
type Warning struct {
	File    string
	Line    int
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s %s", w.File, w.Line, w.Code, w.Message)
}

// Result summarizes a build.
type Result struct {
	Pages    []Page
	Warnings []Warning
}

// Converted is a single source rendered to an HTML fragment.
type Converted struct {
	Title    string
	Tokens   []*token.Token
	HTML     string
	Meta     token.Meta
	Warnings []Warning
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	TreeHTML    template.HTML
	BasePath    string
	Scripts     []string
	Styles      []string
}

// NewSiteGenerator validates cfg and prepares the markdown pipeline.
func NewSiteGenerator(cfg *config.Config, opts ...Option) (*SiteGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	var rendererOpts []markdown.RendererOption
	if cfg.Highlight {
		rendererOpts = append(rendererOpts, markdown.WithHighlighting(cfg.HighlightStyle))
	}

	g := &SiteGenerator{
		cfg:       cfg,
		tokenizer: markdown.NewTokenizer(),
		renderer:  markdown.NewRenderer(rendererOpts...),
		plugin:    tabs.New(cfg.TabsOptions(cfg.OutputDir)),
		logger:    log.Default(),
		tmpl:      tmpl,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Convert runs one source through tokenizer, tab transform and renderer.
// relPath names the source in warnings and errors. A nil env gets a fresh
// one.
func (g *SiteGenerator) Convert(relPath string, src []byte, env *token.Env) (*Converted, error) {
	if env == nil {
		env = token.NewEnv()
	}
	tokens := g.tokenizer.Tokenize(src)
	title := extractTitle(tokens, relPath)

	tokens, err := g.plugin.Transform(tokens, env)
	if err != nil {
		return nil, fmt.Errorf("transforming %s: %w", relPath, err)
	}

	body, err := g.renderer.Render(tokens)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", relPath, err)
	}

	return &Converted{
		Title:    title,
		Tokens:   tokens,
		HTML:     rewriteMDLinks(body),
		Meta:     env.Meta,
		Warnings: collectWarnings(relPath, tokens),
	}, nil
}

// Generate builds the full site. Runtime assets are bundled at most once per
// build.
func (g *SiteGenerator) Generate(ctx context.Context) (*Result, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.cfg.SourceDir,
		Include: g.cfg.Include,
		Exclude: g.cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering sources: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", g.cfg.SourceDir)
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(g.cfg.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return nil, err
	}

	if g.reporter != nil {
		g.reporter.Start(len(files))
		defer g.reporter.Finish()
	}

	bundled := make(map[string]bool)
	result := &Result{}
	converted := make([]*Converted, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		c, err := g.Convert(f.RelPath, src, &token.Env{Bundled: bundled})
		if err != nil {
			return nil, err
		}
		for _, w := range c.Warnings {
			g.logger.Printf("warning: %s", w)
		}
		converted = append(converted, c)
		result.Warnings = append(result.Warnings, c.Warnings...)
		result.Pages = append(result.Pages, Page{
			Source: f.RelPath,
			Output: f.OutPath,
			Title:  c.Title,
			Tabs:   len(c.Meta.Script) > 0,
		})
		if g.reporter != nil {
			g.reporter.Update(i+1, f.RelPath)
		}
	}

	tree := BuildTree(result.Pages)
	for i, page := range result.Pages {
		if err := g.writePage(tree, page, converted[i]); err != nil {
			return nil, fmt.Errorf("writing %s: %w", page.Output, err)
		}
	}

	return result, nil
}

// writePage wraps a converted source in the page template.
func (g *SiteGenerator) writePage(tree *FileTree, page Page, c *Converted) error {
	outPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(page.Output))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	basePath := basePathFor(page.Output)
	data := pageData{
		Title:       c.Title,
		ProjectName: g.projectName,
		Content:     template.HTML(c.HTML),
		TreeHTML:    template.HTML(tree.ToHTML(page.Source, basePath)),
		BasePath:    basePath,
		Scripts:     assetHrefs(basePath, c.Meta.Script),
		Styles:      assetHrefs(basePath, c.Meta.Style),
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// assetHrefs makes output-relative asset paths relative to the page.
// Absolute paths and URLs are kept.
func assetHrefs(basePath string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
			out = append(out, p)
			continue
		}
		out = append(out, basePath+filepath.ToSlash(p))
	}
	return out
}

// extractTitle returns the text of the first level-one heading, or a title
// derived from the file name.
func extractTitle(tokens []*token.Token, relPath string) string {
	for i, t := range tokens {
		if t.Type != "heading_open" || t.Tag != "h1" || i+1 >= len(tokens) {
			continue
		}
		if title := strings.TrimSpace(tokens[i+1].Content); title != "" {
			return title
		}
	}
	return titleFromPath(relPath)
}

// collectWarnings reports tab blocks that were left unterminated.
func collectWarnings(relPath string, tokens []*token.Token) []Warning {
	var out []Warning
	for _, t := range tokens {
		if _, ok := t.AttrGet(tabs.DiagnosticUnterminated); !ok {
			continue
		}
		line := 0
		if t.Map != nil {
			line = t.Map.Start + 1
		}
		out = append(out, Warning{
			File:    relPath,
			Line:    line,
			Code:    tabs.DiagnosticUnterminated,
			Message: "tab block is not closed with {% endlist %}",
		})
	}
	return out
}

// rewriteMDLinks changes links to markdown sources into links to their pages.
func rewriteMDLinks(content string) string {
	r := strings.NewReplacer(`.md"`, `.html"`, `.md#`, `.html#`)
	return r.Replace(content)
}
