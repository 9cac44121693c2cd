package token

// Meta is the side-channel metadata a transformation leaves for the page
// renderer: runtime assets that must be linked from the page.
type Meta struct {
	Script []string `json:"script,omitempty"`
	Style  []string `json:"style,omitempty"`
}

// Env carries per-document state alongside a token stream.
type Env struct {
	Meta Meta
	// Bundled records runtime files already copied to the output. It may be
	// shared between documents of one build.
	Bundled map[string]bool
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{Bundled: make(map[string]bool)}
}

// AddScript appends path to Meta.Script unless it is already listed.
func (e *Env) AddScript(path string) {
	e.Meta.Script = appendUnique(e.Meta.Script, path)
}

// AddStyle appends path to Meta.Style unless it is already listed.
func (e *Env) AddStyle(path string) {
	e.Meta.Style = appendUnique(e.Meta.Style, path)
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
