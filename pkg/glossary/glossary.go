// Package glossary wraps the free-form key/value store persisted with every
// plugin instance. Values arrive from form submissions or decoded JSON, so
// accessors tolerate strings, string slices, and []any alike.
package glossary

import (
	"fmt"
	"sort"
	"strings"
)

// Well-known keys written by the extra fields form.
const (
	KeyElementID          = "extra_element_id"
	KeyCSSClasses         = "extra_css_classes"
	InlineStylesKeyPrefix = "extra_inline_styles:"
)

// Glossary maps glossary keys to user-entered values.
type Glossary map[string]any

// Get returns the raw value stored under key.
func (g Glossary) Get(key string) (any, bool) {
	if g == nil {
		return nil, false
	}
	value, ok := g[key]
	return value, ok
}

// String returns the value under key when it is a string (or fmt.Stringer).
func (g Glossary) String(key string) string {
	value, ok := g.Get(key)
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return ""
	}
}

// Strings returns the value under key as a list. A bare string yields a one
// element list; lists keep only their string entries.
func (g Glossary) Strings(key string) []string {
	value, ok := g.Get(key)
	if !ok {
		return nil
	}
	return ToStrings(value)
}

// Prefixed returns the keys starting with prefix in sorted order.
func (g Glossary) Prefixed(prefix string) []string {
	var keys []string
	for key := range g {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (g Glossary) Clone() Glossary {
	if g == nil {
		return nil
	}
	out := make(Glossary, len(g))
	for key, value := range g {
		out[key] = value
	}
	return out
}

// ToStrings converts string-ish values into a list.
func ToStrings(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return []string{typed}
	case []string:
		return append([]string(nil), typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Truthy mirrors template truthiness: empty strings, zero numbers, false,
// nil, and empty collections are falsy.
func Truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case bool:
		return typed
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	case []any:
		return len(typed) > 0
	case []string:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	case map[string]string:
		return len(typed) > 0
	default:
		return true
	}
}
