// Package registry indexes the available problem generators by id and
// category.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/mathgen/internal/generators"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/gosimple/slug"
)

// ErrNotFound is returned when no generator has the requested id.
var ErrNotFound = errors.New("registry: generator not found")

// Entry describes one registered generator.
type Entry struct {
	ID         string
	Descriptor problemgen.Descriptor
	New        generators.Factory
}

// Registry holds generators with precomputed indices. It is immutable
// after New and safe for concurrent use.
type Registry struct {
	entries    []Entry
	byID       map[string]*Entry
	byCategory map[string][]Entry
	categories []string
}

// New registers factories in the given order. Each factory is called once
// to read its descriptor; ids are slugs of the generator names.
func New(factories ...generators.Factory) (*Registry, error) {
	entries := make([]Entry, 0, len(factories))
	for _, f := range factories {
		if f == nil {
			return nil, errors.New("registry: nil factory")
		}
		d := f(rng.Default()).Descriptor()
		entries = append(entries, Entry{ID: slug.Make(d.Name), Descriptor: d, New: f})
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	r := &Registry{
		entries:    entries,
		byID:       make(map[string]*Entry, len(entries)),
		byCategory: make(map[string][]Entry),
	}
	for i := range r.entries {
		e := &r.entries[i]
		r.byID[e.ID] = e
		cat := e.Descriptor.Category
		if _, seen := r.byCategory[cat]; !seen {
			r.categories = append(r.categories, cat)
		}
		r.byCategory[cat] = append(r.byCategory[cat], *e)
	}
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New(generators.Factories()...)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry of built-in generators.
func Default() *Registry { return defaultRegistry() }

// Get returns the entry registered under id.
func (r *Registry) Get(id string) (Entry, error) {
	e, ok := r.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return *e, nil
}

// Build returns a new generator instance for id drawing from src.
func (r *Registry) Build(id string, src rng.Source) (problemgen.Generator, error) {
	e, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return e.New(src), nil
}

// All returns every entry in registration order.
func (r *Registry) All() []Entry {
	return slices.Clone(r.entries)
}

// IDs returns every generator id in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Categories returns the categories in order of first registration.
func (r *Registry) Categories() []string {
	return slices.Clone(r.categories)
}

// ByCategory returns the entries of one category in registration order.
func (r *Registry) ByCategory(category string) []Entry {
	return slices.Clone(r.byCategory[category])
}

// Search returns entries whose id, name, description or tags contain
// query, case-insensitively. An empty query matches everything.
func (r *Registry) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.All()
	}
	var result []Entry
	for _, e := range r.entries {
		if matches(e, q) {
			result = append(result, e)
		}
	}
	return result
}

func matches(e Entry, q string) bool {
	d := e.Descriptor
	fields := append([]string{e.ID, d.Name, d.Description, d.Category}, d.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
