// Package registry manages expansion plugin registration and conflict
// detection. It ensures two plugins don't claim the same configuration
// subtype and provides lookup capabilities for the generation pass.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/artpar/gateforge/ports"
)

// Registry manages registered expansion plugins and their type claims.
type Registry struct {
	mu sync.RWMutex

	// plugins by subtype
	plugins map[string]ports.ExpansionPlugin
}

// New creates a new registry.
func New() *Registry {
	return &Registry{
		plugins: make(map[string]ports.ExpansionPlugin),
	}
}

// Register registers a plugin under the subtype its schema declares.
// Returns an error if the subtype is already claimed or the schema is
// incomplete.
func (r *Registry) Register(p ports.ExpansionPlugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := p.Describe()
	if entry.BaseType == "" || entry.SubType == "" {
		return fmt.Errorf("plugin schema must declare basetype and subtype")
	}

	if _, exists := r.plugins[entry.SubType]; exists {
		return fmt.Errorf("subtype %q already registered", entry.SubType)
	}

	r.plugins[entry.SubType] = p
	return nil
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(subtype string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[subtype]; !exists {
		return fmt.Errorf("subtype %q not registered", subtype)
	}

	delete(r.plugins, subtype)
	return nil
}

// Get returns a registered plugin by subtype.
func (r *Registry) Get(subtype string) (ports.ExpansionPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[subtype]
	return p, ok
}

// List returns all registered plugins.
func (r *Registry) List() []ports.ExpansionPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subtypes := make([]string, 0, len(r.plugins))
	for st := range r.plugins {
		subtypes = append(subtypes, st)
	}

	// Sort by subtype for consistent ordering
	sort.Strings(subtypes)

	plugins := make([]ports.ExpansionPlugin, 0, len(subtypes))
	for _, st := range subtypes {
		plugins = append(plugins, r.plugins[st])
	}

	return plugins
}

// Subtypes returns the registered subtypes in sorted order.
func (r *Registry) Subtypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subtypes := make([]string, 0, len(r.plugins))
	for st := range r.plugins {
		subtypes = append(subtypes, st)
	}
	sort.Strings(subtypes)
	return subtypes
}
