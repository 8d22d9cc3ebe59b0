package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty keeps the current URL.
	Action string
	// Values overrides the stored glossary values, keyed by field name. Used to
	// redisplay a rejected submission.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field name.
	// The empty key holds form-level messages.
	Errors map[string][]string
	// Hidden inputs rendered before the visible fields, such as CSRF tokens.
	Hidden map[string]string
}

// Value returns the override for name, falling back to fallback.
func (o RenderOptions) Value(name string, fallback map[string]any) (any, bool) {
	if value, ok := o.Values[name]; ok {
		return value, true
	}
	value, ok := fallback[name]
	return value, ok
}
