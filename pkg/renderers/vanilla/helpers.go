package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + strings.NewReplacer(":", "-", " ", "-").Replace(trimmed)
}

func componentTemplate(component string) string {
	return "templates/components/" + component + ".tmpl"
}
