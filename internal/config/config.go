package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/mdtabs/internal/controller"
	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: MDTABS_VARIANTS__DROPDOWN -> variants.dropdown.
const EnvPrefix = "MDTABS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MDTABS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("include needs at least one pattern")
	}
	if err := validateAssetPath("runtime_js_path", c.RuntimeJSPath); err != nil {
		return err
	}
	if err := validateAssetPath("runtime_css_path", c.RuntimeCSSPath); err != nil {
		return err
	}
	if c.RuntimeJSPath == c.RuntimeCSSPath {
		return fmt.Errorf("runtime_js_path and runtime_css_path must differ")
	}
	if c.Highlight && c.HighlightStyle == "" {
		return fmt.Errorf("highlight_style is required when highlight is enabled")
	}
	if c.Persistence.LocalStorage && c.Persistence.StorageKey == "" {
		return fmt.Errorf("persistence.storage_key is required when local_storage is enabled")
	}
	if c.Persistence.QueryParam && c.Persistence.QueryKey == "" {
		return fmt.Errorf("persistence.query_key is required when query_param is enabled")
	}
	return nil
}

// validateAssetPath rejects runtime paths that would escape the output
// directory.
func validateAssetPath(field, p string) error {
	if p == "" {
		return fmt.Errorf("%s is required", field)
	}
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("invalid %s %q: must stay inside output_dir", field, p)
	}
	return nil
}

// EnabledVariants maps the variants section to the transform's switches.
func (c *Config) EnabledVariants() tabs.EnabledVariants {
	return tabs.EnabledVariants{
		tabs.VariantRegular:   c.Variants.Regular,
		tabs.VariantRadio:     c.Variants.Radio,
		tabs.VariantDropdown:  c.Variants.Dropdown,
		tabs.VariantAccordion: c.Variants.Accordion,
	}
}

// TabsOptions builds the transform options. Bundled runtime files are
// written below outputDir.
func (c *Config) TabsOptions(outputDir string) tabs.Options {
	return tabs.Options{
		RuntimeJSPath:    c.RuntimeJSPath,
		RuntimeCSSPath:   c.RuntimeCSSPath,
		ContainerClasses: c.ContainerClasses,
		Bundle:           c.Bundle,
		OutputDir:        outputDir,
		Variants:         c.EnabledVariants(),
	}
}

// ControllerOptions builds the persistence options of the tab controller.
func (c *Config) ControllerOptions() controller.Options {
	return controller.Options{
		LocalStorage: c.Persistence.LocalStorage,
		QueryParam:   c.Persistence.QueryParam,
		StorageKey:   c.Persistence.StorageKey,
		QueryKey:     c.Persistence.QueryKey,
	}
}
