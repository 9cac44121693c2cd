package config

// Config is the top-level mdtabs configuration, corresponding to .mdtabs.yml.
type Config struct {
	SourceDir        string            `yaml:"source_dir" koanf:"source_dir"`
	OutputDir        string            `yaml:"output_dir" koanf:"output_dir"`
	Include          []string          `yaml:"include" koanf:"include"`
	Exclude          []string          `yaml:"exclude" koanf:"exclude"`
	RuntimeJSPath    string            `yaml:"runtime_js_path" koanf:"runtime_js_path"`
	RuntimeCSSPath   string            `yaml:"runtime_css_path" koanf:"runtime_css_path"`
	ContainerClasses string            `yaml:"container_classes" koanf:"container_classes"`
	Bundle           bool              `yaml:"bundle" koanf:"bundle"`
	Highlight        bool              `yaml:"highlight" koanf:"highlight"`
	HighlightStyle   string            `yaml:"highlight_style" koanf:"highlight_style"`
	Variants         VariantsConfig    `yaml:"variants" koanf:"variants"`
	Persistence      PersistenceConfig `yaml:"persistence" koanf:"persistence"`
}

// VariantsConfig toggles the optional tab renderings. The regular variant
// is always available as the fallback.
type VariantsConfig struct {
	Regular   bool `yaml:"regular" koanf:"regular"`
	Radio     bool `yaml:"radio" koanf:"radio"`
	Dropdown  bool `yaml:"dropdown" koanf:"dropdown"`
	Accordion bool `yaml:"accordion" koanf:"accordion"`
}

// PersistenceConfig controls how the tab controller remembers selections.
type PersistenceConfig struct {
	LocalStorage bool   `yaml:"local_storage" koanf:"local_storage"`
	QueryParam   bool   `yaml:"query_param" koanf:"query_param"`
	StorageKey   string `yaml:"storage_key" koanf:"storage_key"`
	QueryKey     string `yaml:"query_key" koanf:"query_key"`
}
