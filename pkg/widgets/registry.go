package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in component identifiers exposed by the registry. Renderers ship one
// template per component.
const (
	ComponentInput          = "input"
	ComponentSelect         = "select"
	ComponentSelectMultiple = "select-multiple"
	ComponentCascadingSize  = "cascading-size"
	ComponentColorPicker    = "color-picker"
)

// Matcher decides whether a component should render the supplied widget.
type Matcher func(widget Widget) bool

// Componenter lets a widget name its component explicitly, bypassing matcher
// evaluation.
type Componenter interface {
	Component() string
}

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects template components for widgets based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a component.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in component matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a component matcher with the provided name and priority.
// Higher priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the component name for a widget. Explicit Componenter hints
// are honoured before matcher evaluation.
func (r *Registry) Resolve(widget Widget) (string, bool) {
	if widget == nil {
		return "", false
	}
	if explicit, ok := widget.(Componenter); ok {
		if name := strings.TrimSpace(explicit.Component()); name != "" {
			return name, true
		}
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(widget) {
			return entry.name, true
		}
	}
	return "", false
}

func kindIs(kinds ...Kind) Matcher {
	return func(widget Widget) bool {
		for _, kind := range kinds {
			if widget.Kind() == kind {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(ComponentCascadingSize, 90, kindIs(KindCascadingSize))
	r.Register(ComponentColorPicker, 80, kindIs(KindColorPicker))
	r.Register(ComponentSelectMultiple, 70, kindIs(KindSelectMultiple))
	r.Register(ComponentSelect, 60, kindIs(KindSelect, KindSelectOverflow))
	r.Register(ComponentInput, 10, kindIs(KindTextInput))
}
