package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the read-only tool catalog. Built once at process start;
// no mutation operations exist after that.
type Registry struct {
	byName  map[string]Descriptor
	byGroup map[Group][]Descriptor
	names   []string
}

// New validates the static catalog and builds lookup indexes. Duplicate
// names or undeclared groups are configuration errors surfaced here, at
// startup, never at call time.
func New() (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]Descriptor, len(catalog)),
		byGroup: make(map[Group][]Descriptor),
	}
	for _, d := range catalog {
		if d.Name == "" {
			return nil, fmt.Errorf("registry: descriptor with empty name")
		}
		if _, ok := ParseGroup(string(d.Group)); !ok {
			return nil, fmt.Errorf("registry: tool %q has unknown group %q", d.Name, d.Group)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate tool %q", d.Name)
		}
		d.Tier = GroupRisk[d.Group]
		r.byName[d.Name] = d
		r.byGroup[d.Group] = append(r.byGroup[d.Group], d)
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide catalog, building it on first use.
// The catalog is static, so a build failure is a programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New()
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

// Describe looks up a tool by name.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ByGroup returns the descriptors belonging to a group, in catalog order.
func (r *Registry) ByGroup(g Group) []Descriptor {
	out := make([]Descriptor, len(r.byGroup[g]))
	copy(out, r.byGroup[g])
	return out
}

// Names returns every tool name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len reports the catalog size.
func (r *Registry) Len() int {
	return len(r.byName)
}
