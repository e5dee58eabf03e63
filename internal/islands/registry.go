package islands

import (
	"sort"

	"github.com/maruel/natural"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// A Registry maps module ids to the tag names of their islands, it is safe for concurrent use.
// Additions are merged: a tag name is never removed by a later addition.
type Registry struct {
	modules cmap.ConcurrentMap[string, tagSet]
}

// tagSets are never mutated once stored.
type tagSet map[string]struct{}

func NewRegistry() *Registry {
	return &Registry{modules: cmap.New[tagSet]()}
}

// Add adds tag names to the set of tag names of a module.
func (r *Registry) Add(moduleID string, tagNames ...string) {
	r.modules.Upsert(moduleID, nil, func(exist bool, valueInMap, _ tagSet) tagSet {
		merged := make(tagSet, len(valueInMap)+len(tagNames))
		for name := range valueInMap {
			merged[name] = struct{}{}
		}
		for _, name := range tagNames {
			merged[name] = struct{}{}
		}
		return merged
	})
}

// AddRecord adds the tag name of a transformed island.
func (r *Registry) AddRecord(record IslandRecord) {
	r.Add(record.ModuleID, record.TagName)
}

// Merge adds all the entries of other to r.
func (r *Registry) Merge(other *Registry) {
	for item := range other.modules.IterBuffered() {
		names := make([]string, 0, len(item.Val))
		for name := range item.Val {
			names = append(names, name)
		}
		r.Add(item.Key, names...)
	}
}

func (r *Registry) Has(moduleID string) bool {
	return r.modules.Has(moduleID)
}

// IsIsland returns true if the module exports at least one island component.
func (r *Registry) IsIsland(moduleID string) bool {
	set, ok := r.modules.Get(moduleID)
	return ok && len(set) > 0
}

// TagNames returns the tag names of a module in natural order.
func (r *Registry) TagNames(moduleID string) []string {
	set, ok := r.modules.Get(moduleID)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// ModuleIDs returns the ids of the registered modules in natural order.
func (r *Registry) ModuleIDs() []string {
	ids := r.modules.Keys()
	sort.Sort(natural.StringSlice(ids))
	return ids
}

func (r *Registry) Count() int {
	return r.modules.Count()
}
