// Package tabs implements the {% list tabs %} markdown extension: it locates
// tab blocks in a token stream, extracts their items and replaces each block
// with the tokens of one of four presentation variants.
package tabs

// Class names shared by the generated markup and the runtime controller.
const (
	TabsClassName         = "yfm-tabs"
	TabClassName          = "yfm-tab"
	TabPanelClassName     = "yfm-tab-panel"
	TabsListClassName     = "yfm-tab-list"
	ActiveClassName       = "active"
	TabGroupClassName     = "yfm-tab-group"
	DropdownClassName     = "yfm-tabs-dropdown"
	DropdownMenuClassName = "yfm-tabs-dropdown-menu"
	DropdownSelectClass   = "yfm-tabs-dropdown-select"
	DropdownFilledClass   = "filled"
	AccordionClassName    = "yfm-tabs-accordion"
	RadioClassName        = "yfm-tabs-vertical"
	VerticalTabClassName  = "yfm-vertical-tab"
)

// Data attributes read by the runtime controller.
const (
	TabActiveKey       = "data-diplodoc-is-active"
	GroupDataKey       = "data-diplodoc-group"
	TabDataKey         = "data-diplodoc-key"
	TabDataVariant     = "data-diplodoc-variant"
	TabDataID          = "data-diplodoc-id"
	TabForcedOpen      = "data-diplodoc-forced"
	TabDataVertical    = "data-diplodoc-vertical-tab"
	DefaultGroupPrefix = "defaultTabsGroup-"
	ActiveTabText      = "{selected}"
)

// DiagnosticUnterminated marks the open token of a block whose
// {% endlist %} could not be matched.
const DiagnosticUnterminated = "YFM005"

// Variant is the presentation mode of a tab block.
type Variant string

const (
	VariantRegular   Variant = "regular"
	VariantRadio     Variant = "radio"
	VariantDropdown  Variant = "dropdown"
	VariantAccordion Variant = "accordion"
)

// Variants lists every known variant.
var Variants = []Variant{VariantRegular, VariantRadio, VariantDropdown, VariantAccordion}

// ParseVariant maps a block keyword to a Variant. "horizontal" is accepted as
// an alias of regular.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "regular", "horizontal":
		return VariantRegular, true
	case "radio":
		return VariantRadio, true
	case "dropdown":
		return VariantDropdown, true
	case "accordion":
		return VariantAccordion, true
	}
	return "", false
}

// EnabledVariants reports which variants a plugin may emit. Blocks asking
// for a disabled variant fall back to regular.
type EnabledVariants map[Variant]bool

// DefaultEnabledVariants enables regular and radio.
func DefaultEnabledVariants() EnabledVariants {
	return EnabledVariants{VariantRegular: true, VariantRadio: true}
}
