package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cascade/pkg/plugin"
)

// ErrUnknownPlugin is returned when no plugin is registered for a type.
var ErrUnknownPlugin = errors.New("orchestrator: unknown plugin type")

// Pool stores plugins by type name.
type Pool struct {
	mu      sync.RWMutex
	plugins map[string]plugin.Plugin
}

// NewPool creates a pool holding plugins.
func NewPool(plugins ...plugin.Plugin) (*Pool, error) {
	p := &Pool{plugins: make(map[string]plugin.Plugin)}
	for _, pl := range plugins {
		if err := p.Register(pl); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register adds a plugin by its Type(). Duplicate types return an error.
func (p *Pool) Register(pl plugin.Plugin) error {
	if pl == nil {
		return fmt.Errorf("orchestrator: plugin is required")
	}
	name := strings.TrimSpace(pl.Type())
	if name == "" {
		return fmt.Errorf("orchestrator: plugin type is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.plugins[name]; exists {
		return fmt.Errorf("orchestrator: plugin %q already registered", name)
	}
	p.plugins[name] = pl
	return nil
}

// Replace registers pl, overwriting any plugin of the same type. It is used
// to swap a plugin for its decorated version.
func (p *Pool) Replace(pl plugin.Plugin) error {
	if pl == nil || strings.TrimSpace(pl.Type()) == "" {
		return fmt.Errorf("orchestrator: plugin type is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plugins[strings.TrimSpace(pl.Type())] = pl
	return nil
}

// MustRegister panics on registration failure.
func (p *Pool) MustRegister(pl plugin.Plugin) {
	if err := p.Register(pl); err != nil {
		panic(err)
	}
}

// Get retrieves a plugin by type.
func (p *Pool) Get(pluginType string) (plugin.Plugin, error) {
	key := strings.TrimSpace(pluginType)

	p.mu.RLock()
	defer p.mu.RUnlock()

	pl, ok := p.plugins[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPlugin, key)
	}
	return pl, nil
}

// List returns sorted plugin types.
func (p *Pool) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.plugins))
	for name := range p.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls fn for every plugin in type order.
func (p *Pool) Each(fn func(plugin.Plugin) error) error {
	for _, name := range p.List() {
		pl, err := p.Get(name)
		if err != nil {
			continue
		}
		if err := fn(pl); err != nil {
			return err
		}
	}
	return nil
}
