package render

import (
	"sort"
	"strings"
)

// ClassAttr joins classes into a class attribute value, dropping blanks and
// duplicates while preserving first-seen order.
func ClassAttr(classes []string) string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return strings.Join(out, " ")
}

// StyleAttr serialises inline styles as "prop: value; prop: value" with
// properties sorted for deterministic output.
func StyleAttr(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}
	properties := make([]string, 0, len(styles))
	for property, value := range styles {
		if strings.TrimSpace(property) == "" || strings.TrimSpace(value) == "" {
			continue
		}
		properties = append(properties, property)
	}
	sort.Strings(properties)

	var b strings.Builder
	for i, property := range properties {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strings.TrimSpace(property))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(styles[property]))
	}
	return b.String()
}

// SortedAttributes returns attribute names in sorted order.
func SortedAttributes(attributes map[string]string) []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
