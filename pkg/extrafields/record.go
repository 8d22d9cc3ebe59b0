package extrafields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cascade/pkg/glossary"
)

// Key prefixes used inside Record.InlineStyles.
const (
	EnabledStylesKeyPrefix = "extra_fields:"
	UnitsKeyPrefix         = "extra_units:"
)

// CSSClasses configures the class picker offered to editors.
type CSSClasses struct {
	// ClassNames is a comma separated list; whitespace is ignored.
	ClassNames string `json:"class_names" yaml:"class_names"`
	Multiple   bool   `json:"multiple" yaml:"multiple"`
}

// Choices splits ClassNames into individual class names, dropping blanks.
func (c CSSClasses) Choices() []string {
	cleaned := strings.Join(strings.Fields(c.ClassNames), "")
	if cleaned == "" {
		return nil
	}
	var out []string
	for _, name := range strings.Split(cleaned, ",") {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// InlineStyles holds the per-group style configuration as stored by the
// admin: "extra_fields:<Group>" lists enabled properties and
// "extra_units:<Group>" holds a comma separated unit list.
type InlineStyles map[string]any

// Enabled returns the properties enabled for group.
func (s InlineStyles) Enabled(group string) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, property := range glossary.ToStrings(s[EnabledStylesKeyPrefix+group]) {
		if property = strings.TrimSpace(property); property != "" {
			out = append(out, property)
		}
	}
	return out
}

// Units returns the allowed units for group, or nil when none are listed.
func (s InlineStyles) Units(group string) []string {
	if s == nil {
		return nil
	}
	var raw []string
	switch typed := s[UnitsKeyPrefix+group].(type) {
	case string:
		raw = strings.Split(typed, ",")
	default:
		raw = glossary.ToStrings(typed)
	}
	var out []string
	for _, unit := range raw {
		if unit = strings.TrimSpace(unit); unit != "" {
			out = append(out, unit)
		}
	}
	return out
}

// Record is the per plugin type, per site extra fields configuration.
type Record struct {
	PluginType   string       `json:"plugin_type" yaml:"plugin_type"`
	SiteID       string       `json:"site" yaml:"site"`
	AllowIDTag   bool         `json:"allow_id_tag" yaml:"allow_id_tag"`
	CSSClasses   CSSClasses   `json:"css_classes" yaml:"css_classes"`
	InlineStyles InlineStyles `json:"inline_styles" yaml:"inline_styles"`
}

// Key identifies the record within a store.
func (r Record) Key() Key {
	return Key{PluginType: r.PluginType, SiteID: r.SiteID}
}

// Validate checks identity fields and that enabled styles belong to a known
// group.
func (r Record) Validate(groups []StyleGroup) error {
	if strings.TrimSpace(r.PluginType) == "" {
		return fmt.Errorf("extrafields: plugin type is required")
	}
	if strings.TrimSpace(r.SiteID) == "" {
		return fmt.Errorf("extrafields: site is required")
	}
	known := make(map[string]StyleGroup, len(groups))
	for _, group := range groups {
		known[group.Name] = group
	}
	for key := range r.InlineStyles {
		var name string
		switch {
		case strings.HasPrefix(key, EnabledStylesKeyPrefix):
			name = strings.TrimPrefix(key, EnabledStylesKeyPrefix)
		case strings.HasPrefix(key, UnitsKeyPrefix):
			name = strings.TrimPrefix(key, UnitsKeyPrefix)
		default:
			return fmt.Errorf("extrafields: unexpected inline styles key %q", key)
		}
		group, ok := known[name]
		if !ok {
			return fmt.Errorf("extrafields: unknown style group %q", name)
		}
		for _, property := range r.InlineStyles.Enabled(name) {
			if !group.Has(property) {
				return fmt.Errorf("extrafields: property %q is not part of group %q", property, name)
			}
		}
	}
	return nil
}

// Key addresses a record by plugin type and site.
type Key struct {
	PluginType string
	SiteID     string
}

func (k Key) String() string {
	return k.PluginType + "@" + k.SiteID
}
