package tabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed runtime
var runtimeFiles embed.FS

var runtimeAssets, _ = fs.Sub(runtimeFiles, "runtime")

// copyRuntimeFiles writes the runtime script and stylesheet below
// opts.OutputDir. Files already listed in copied are skipped.
func copyRuntimeFiles(opts Options, copied map[string]bool) error {
	files := []struct{ origin, target string }{
		{"index.js", opts.RuntimeJSPath},
		{"index.css", opts.RuntimeCSSPath},
	}
	for _, f := range files {
		if copied[f.origin] {
			continue
		}
		copied[f.origin] = true

		data, err := fs.ReadFile(opts.Assets, f.origin)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.origin, err)
		}
		dst := filepath.Join(opts.OutputDir, filepath.FromSlash(f.target))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
	}
	return nil
}
