package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/mdtabs/internal/tabs"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to mdtabs! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Source directory.
	sourcePrompt := promptui.Prompt{
		Label:   "Directory containing markdown sources",
		Default: cfg.SourceDir,
	}
	sourceDir, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	}

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered pages",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 3. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	// 4. Optional variants. Regular is always on.
	for _, v := range tabs.Variants[1:] {
		on, err := confirm(fmt.Sprintf("Enable the %s variant", v))
		if err != nil {
			return nil, fmt.Errorf("%s variant: %w", v, err)
		}
		cfg.setVariant(v, on)
	}

	// 5. Persistence.
	query, err := confirm("Remember selected tabs in the page URL")
	if err != nil {
		return nil, fmt.Errorf("query persistence: %w", err)
	}

	cfg.SourceDir = sourceDir
	cfg.OutputDir = outputDir
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	cfg.Persistence.QueryParam = query

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// confirm asks a yes/no question defaulting to yes.
func confirm(label string) (bool, error) {
	p := promptui.Select{
		Label: label,
		Items: []string{"yes", "no"},
	}
	idx, _, err := p.Run()
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

func (c *Config) setVariant(v tabs.Variant, on bool) {
	switch v {
	case tabs.VariantRegular:
		c.Variants.Regular = on
	case tabs.VariantRadio:
		c.Variants.Radio = on
	case tabs.VariantDropdown:
		c.Variants.Dropdown = on
	case tabs.VariantAccordion:
		c.Variants.Accordion = on
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
