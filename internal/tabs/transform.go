package tabs

import (
	"fmt"
	"io/fs"
	"strconv"
	"sync/atomic"

	"github.com/ziadkadry99/mdtabs/internal/token"
)

// Options configure a Plugin.
type Options struct {
	RuntimeJSPath    string
	RuntimeCSSPath   string
	ContainerClasses string
	// Bundle copies the runtime files into OutputDir after a document that
	// contains tabs.
	Bundle    bool
	OutputDir string
	Variants  EnabledVariants
	// Assets is the source of the runtime files. Defaults to the embedded
	// runtime.
	Assets fs.FS
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		RuntimeJSPath:  "_assets/tabs-extension.js",
		RuntimeCSSPath: "_assets/tabs-extension.css",
		Bundle:         true,
		OutputDir:      ".",
		Variants:       DefaultEnabledVariants(),
	}
}

// Plugin rewrites {% list tabs %} blocks in token streams.
type Plugin struct {
	opts Options
	runs atomic.Uint64
}

// New creates a Plugin. Empty fields of opts take their default values.
func New(opts Options) *Plugin {
	def := DefaultOptions()
	if opts.RuntimeJSPath == "" {
		opts.RuntimeJSPath = def.RuntimeJSPath
	}
	if opts.RuntimeCSSPath == "" {
		opts.RuntimeCSSPath = def.RuntimeCSSPath
	}
	if opts.OutputDir == "" {
		opts.OutputDir = def.OutputDir
	}
	if opts.Variants == nil {
		opts.Variants = def.Variants
	}
	if opts.Assets == nil {
		opts.Assets = runtimeAssets
	}
	return &Plugin{opts: opts}
}

// run is the state of one document transformation. It is discarded when the
// transformation ends, so slug disambiguation never leaks between documents.
type run struct {
	id       string
	slugger  *Slugger
	inserted bool
}

func (p *Plugin) newRun() *run {
	return &run{
		id:      strconv.FormatUint(p.runs.Add(1), 10),
		slugger: NewSlugger(),
	}
}

// Transform returns tokens with every tab block replaced by the tokens of its
// variant. Unterminated blocks are left in place with a diagnostic attribute;
// blocks without tabs are removed. A block with more than one {selected} tab
// aborts the transformation with ErrMultipleActive.
//
// When at least one block was replaced, the runtime assets are registered in
// env.Meta and, if bundling is enabled, copied to the output directory.
func (p *Plugin) Transform(tokens []*token.Token, env *token.Env) ([]*token.Token, error) {
	r := p.newRun()

	out := make([]*token.Token, 0, len(tokens))
	pending := tokens
	i := 0
	for i < len(pending) {
		res := locate(pending, i)
		if res.match == nil {
			end := min(i+res.step, len(pending))
			out = append(out, pending[i:end]...)
			i = end
			continue
		}

		m := res.match
		end := min(m.end(), len(pending))
		tabs := extractTabs(pending, i+3, m.closeIndex)
		if len(tabs) == 0 {
			pending = pending[end:]
			i = 0
			continue
		}

		variant := m.props.Variant
		if !p.opts.Variants[variant] {
			variant = VariantRegular
		}
		generated, err := generate(tabs, generateOptions{
			containerClasses: p.opts.ContainerClasses,
			group:            m.props.Group,
			variant:          variant,
			slugger:          r.slugger,
		})
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.id, err)
		}
		r.inserted = true

		// Only the container open token is final. Everything after it is
		// scanned again so nested blocks in tab bodies get replaced too.
		out = append(out, generated[0])
		rest := make([]*token.Token, 0, len(generated)-1+len(pending)-end)
		rest = append(rest, generated[1:]...)
		rest = append(rest, pending[end:]...)
		pending = rest
		i = 0
	}

	if r.inserted && env != nil {
		env.AddScript(p.opts.RuntimeJSPath)
		env.AddStyle(p.opts.RuntimeCSSPath)
		if p.opts.Bundle {
			if env.Bundled == nil {
				env.Bundled = make(map[string]bool)
			}
			if err := copyRuntimeFiles(p.opts, env.Bundled); err != nil {
				return nil, fmt.Errorf("bundling runtime: %w", err)
			}
		}
	}

	return out, nil
}
