package policy

import (
	"sort"

	"github.com/kestrelsec/xward/internal/model"
	"github.com/kestrelsec/xward/internal/registry"
)

// Spec carries one resolution's inputs: profile name plus optional group and
// tool overrides. It is threaded explicitly into every resolution call so
// configuration can change between calls without a process restart.
type Spec struct {
	Profile  string
	Groups   []string
	Disabled []string
	Enabled  []string
}

// Effective is the computed allow-set for one resolution call. Derived,
// never cached beyond the call that produced it.
type Effective struct {
	Profile Profile
	allow   map[string]struct{}
}

// Resolve computes the effective policy for a spec against the catalog.
//
// Membership for a tool = (its group in the resolved group set) OR
// (tool force-enabled), minus any disabled tool. Disabled always wins:
// an explicit block cannot be bypassed by an explicit allow.
//
// Resolution is pure: identical inputs produce an identical policy.
func Resolve(reg *registry.Registry, spec Spec) (*Effective, error) {
	name := spec.Profile
	if name == "" {
		name = string(ProfileResearcher)
	}
	profile, ok := ParseProfile(name)
	if !ok {
		return nil, model.NewInvalidConfiguration("unknown profile %q", spec.Profile)
	}

	var groups []registry.Group
	if profile == ProfileCustom {
		if len(spec.Groups) == 0 {
			return nil, model.NewInvalidConfiguration("custom profile requires a non-empty group list")
		}
		for _, g := range spec.Groups {
			parsed, ok := registry.ParseGroup(g)
			if !ok {
				return nil, model.NewInvalidConfiguration("unknown group %q", g)
			}
			groups = append(groups, parsed)
		}
	} else {
		// Fixed profiles use their group set verbatim; a stray group list
		// from the environment is ignored, matching long-standing behavior.
		groups = profile.Groups()
	}

	allow := make(map[string]struct{})
	for _, g := range groups {
		for _, d := range reg.ByGroup(g) {
			allow[d.Name] = struct{}{}
		}
	}

	for _, name := range spec.Enabled {
		if _, ok := reg.Describe(name); !ok {
			return nil, model.NewInvalidConfiguration("unknown tool %q in enabled list", name)
		}
		allow[name] = struct{}{}
	}

	for _, name := range spec.Disabled {
		if _, ok := reg.Describe(name); !ok {
			return nil, model.NewInvalidConfiguration("unknown tool %q in disabled list", name)
		}
		delete(allow, name)
	}

	return &Effective{Profile: profile, allow: allow}, nil
}

// Authorized reports whether a tool is in the effective allow-set.
func (e *Effective) Authorized(tool string) bool {
	_, ok := e.allow[tool]
	return ok
}

// AllowedTools returns the allow-set as a sorted slice.
func (e *Effective) AllowedTools() []string {
	out := make([]string, 0, len(e.allow))
	for name := range e.allow {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len reports the allow-set size.
func (e *Effective) Len() int {
	return len(e.allow)
}
