// ABOUTME: Generic registry interface and implementation for builtin components
// ABOUTME: Thread-safe registration with name-ordered listing and metadata search

package builtins

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry provides registration and discovery of named components.
type Registry[T any] interface {
	Register(name string, component T, metadata Metadata) error
	Unregister(name string) bool

	Get(name string) (T, bool)

	// MustGet panics if name is not registered
	MustGet(name string) T

	// List returns all entries ordered by name
	List() []RegistryEntry[T]

	ListByCategory(category string) []RegistryEntry[T]

	// ListByTags returns entries carrying all of tags
	ListByTags(tags ...string) []RegistryEntry[T]

	// Search matches name, description, category and tags
	Search(query string) []RegistryEntry[T]

	Categories() []string

	Len() int

	// Clear removes all entries (useful for testing)
	Clear()
}

// Metadata describes a registered component.
type Metadata struct {
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	Tags         []string `json:"tags" yaml:"tags"`
	Description  string   `json:"description" yaml:"description"`
	Version      string   `json:"version" yaml:"version"`
	Deprecated   bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Experimental bool     `json:"experimental,omitempty" yaml:"experimental,omitempty"`
}

// RegistryEntry combines a component with its metadata.
type RegistryEntry[T any] struct {
	Component T
	Metadata  Metadata
}

type baseRegistry[T any] struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() Registry[T] {
	return &baseRegistry[T]{
		entries: make(map[string]RegistryEntry[T]),
	}
}

func (r *baseRegistry[T]) Register(name string, component T, metadata Metadata) error {
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if metadata.Name != "" && metadata.Name != name {
		return fmt.Errorf("metadata name '%s' does not match registration name '%s'", metadata.Name, name)
	}
	metadata.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("component '%s' is already registered", name)
	}
	r.entries[name] = RegistryEntry[T]{Component: component, Metadata: metadata}
	return nil
}

// Unregister removes name and reports whether it was present.
func (r *baseRegistry[T]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.entries[name]
	delete(r.entries, name)
	return exists
}

func (r *baseRegistry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	return entry.Component, exists
}

func (r *baseRegistry[T]) MustGet(name string) T {
	component, exists := r.Get(name)
	if !exists {
		panic(fmt.Sprintf("component '%s' not found in registry", name))
	}
	return component
}

func (r *baseRegistry[T]) List() []RegistryEntry[T] {
	return r.filter(func(RegistryEntry[T]) bool { return true })
}

func (r *baseRegistry[T]) ListByCategory(category string) []RegistryEntry[T] {
	return r.filter(func(e RegistryEntry[T]) bool {
		return strings.EqualFold(e.Metadata.Category, category)
	})
}

func (r *baseRegistry[T]) ListByTags(tags ...string) []RegistryEntry[T] {
	return r.filter(func(e RegistryEntry[T]) bool {
		return containsAllTags(e.Metadata.Tags, tags)
	})
}

func (r *baseRegistry[T]) Search(query string) []RegistryEntry[T] {
	query = strings.ToLower(query)
	return r.filter(func(e RegistryEntry[T]) bool {
		return query == "" || matchesSearch(e.Metadata, query)
	})
}

// Categories returns the distinct non-empty categories, sorted.
func (r *baseRegistry[T]) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, entry := range r.entries {
		if c := entry.Metadata.Category; c != "" && !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories
}

func (r *baseRegistry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *baseRegistry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]RegistryEntry[T])
}

// filter returns matching entries ordered by name.
func (r *baseRegistry[T]) filter(keep func(RegistryEntry[T]) bool) []RegistryEntry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]RegistryEntry[T], 0, len(r.entries))
	for _, entry := range r.entries {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Metadata.Name < entries[j].Metadata.Name
	})
	return entries
}

func containsAllTags(tags, searchTags []string) bool {
	tagMap := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagMap[strings.ToLower(tag)] = true
	}
	for _, searchTag := range searchTags {
		if !tagMap[strings.ToLower(searchTag)] {
			return false
		}
	}
	return true
}

func matchesSearch(metadata Metadata, query string) bool {
	fields := append([]string{metadata.Name, metadata.Description, metadata.Category}, metadata.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
