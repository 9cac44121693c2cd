package config

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".mdtabs.yml"

// DefaultExcludes are glob patterns excluded from discovery by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"vendor/**",
	"_build/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:      ".",
		OutputDir:      "_build",
		Include:        []string{"**/*.md"},
		Exclude:        append([]string(nil), DefaultExcludes...),
		RuntimeJSPath:  "_assets/tabs-extension.js",
		RuntimeCSSPath: "_assets/tabs-extension.css",
		Bundle:         true,
		Highlight:      true,
		HighlightStyle: "github",
		Variants: VariantsConfig{
			Regular:   true,
			Radio:     true,
			Dropdown:  true,
			Accordion: true,
		},
		Persistence: PersistenceConfig{
			LocalStorage: true,
			QueryParam:   true,
			StorageKey:   "tabsHistory",
			QueryKey:     "tabs",
		},
	}
}
