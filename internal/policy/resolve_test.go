package policy

import (
	"errors"
	"testing"

	"github.com/kestrelsec/xward/internal/model"
	"github.com/kestrelsec/xward/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New()
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return r
}

func TestResearcherAllowsReadOnly(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "researcher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eff.Authorized("search_twitter") {
		t.Error("expected search_twitter allowed for researcher")
	}
	if !eff.Authorized("get_conversation") {
		t.Error("expected get_conversation allowed for researcher")
	}
	if eff.Authorized("post_tweet") {
		t.Error("expected post_tweet denied for researcher")
	}
	if eff.Authorized("send_dm") {
		t.Error("expected send_dm denied for researcher")
	}
}

func TestEmptyProfileDefaultsToResearcher(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Profile != ProfileResearcher {
		t.Errorf("expected researcher default, got %s", eff.Profile)
	}
}

func TestCreatorAllowsPublish(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "creator"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eff.Authorized("post_tweet") {
		t.Error("expected post_tweet allowed for creator")
	}
	if eff.Authorized("follow_user") {
		t.Error("expected follow_user denied for creator")
	}
}

func TestMonotonicEscalation(t *testing.T) {
	reg := testRegistry(t)
	order := []string{"researcher", "creator", "manager", "automation"}
	var prev *Effective
	for _, name := range order {
		eff, err := Resolve(reg, Spec{Profile: name})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if prev != nil {
			for _, tool := range prev.AllowedTools() {
				if !eff.Authorized(tool) {
					t.Errorf("%s should allow %s (allowed by lower profile)", name, tool)
				}
			}
			if eff.Len() <= prev.Len() {
				t.Errorf("%s allow-set should be strictly larger than its predecessor", name)
			}
		}
		prev = eff
	}
}

func TestAllowSetIsSubsetOfCatalog(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "automation"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tool := range eff.AllowedTools() {
		if _, ok := reg.Describe(tool); !ok {
			t.Errorf("allow-set contains %q which is not in the catalog", tool)
		}
	}
}

func TestUnknownProfileRejected(t *testing.T) {
	reg := testRegistry(t)
	_, err := Resolve(reg, Spec{Profile: "superadmin"})
	assertInvalidConfiguration(t, err)
}

func TestCustomRequiresGroups(t *testing.T) {
	reg := testRegistry(t)
	_, err := Resolve(reg, Spec{Profile: "custom"})
	assertInvalidConfiguration(t, err)
}

func TestCustomRejectsUnknownGroup(t *testing.T) {
	reg := testRegistry(t)
	_, err := Resolve(reg, Spec{Profile: "custom", Groups: []string{"research", "weaponry"}})
	assertInvalidConfiguration(t, err)
}

func TestCustomGroupsGrantMembership(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "custom", Groups: []string{"research", "engage"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eff.Authorized("search_twitter") {
		t.Error("expected search_twitter allowed")
	}
	if !eff.Authorized("favorite_tweet") {
		t.Error("expected favorite_tweet allowed")
	}
	if eff.Authorized("post_tweet") {
		t.Error("expected post_tweet denied (publish not granted)")
	}
}

func TestFixedProfileIgnoresGroupList(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "researcher", Groups: []string{"dms"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Authorized("send_dm") {
		t.Error("group list must not widen a fixed profile")
	}
}

func TestForceEnableOutsideGroups(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{
		Profile: "custom",
		Groups:  []string{"research"},
		Enabled: []string{"post_tweet"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eff.Authorized("post_tweet") {
		t.Error("expected force-enabled tool to be authorized")
	}
}

func TestDisabledOverridesEnabled(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{
		Profile:  "creator",
		Enabled:  []string{"post_tweet"},
		Disabled: []string{"post_tweet"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Authorized("post_tweet") {
		t.Error("disabled must win over enabled")
	}
}

func TestDisabledOverridesGroupMembership(t *testing.T) {
	reg := testRegistry(t)
	eff, err := Resolve(reg, Spec{Profile: "creator", Disabled: []string{"delete_tweet"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Authorized("delete_tweet") {
		t.Error("disabled tool should be denied despite group membership")
	}
	if !eff.Authorized("post_tweet") {
		t.Error("sibling tools must remain allowed")
	}
}

func TestUnknownToolInOverridesRejected(t *testing.T) {
	reg := testRegistry(t)
	if _, err := Resolve(reg, Spec{Profile: "creator", Disabled: []string{"frobnicate"}}); err == nil {
		t.Error("expected error for unknown disabled tool")
	}
	if _, err := Resolve(reg, Spec{Profile: "creator", Enabled: []string{"frobnicate"}}); err == nil {
		t.Error("expected error for unknown enabled tool")
	}
}

func TestResolutionIsPure(t *testing.T) {
	reg := testRegistry(t)
	spec := Spec{Profile: "manager", Disabled: []string{"block_user"}}
	a, err := Resolve(reg, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Resolve(reg, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at, bt := a.AllowedTools(), b.AllowedTools()
	if len(at) != len(bt) {
		t.Fatalf("allow-set sizes differ: %d vs %d", len(at), len(bt))
	}
	for i := range at {
		if at[i] != bt[i] {
			t.Errorf("allow-sets differ at %d: %s vs %s", i, at[i], bt[i])
		}
	}
}

func assertInvalidConfiguration(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected invalid_configuration error, got nil")
	}
	var me *model.Error
	if !errors.As(err, &me) {
		t.Fatalf("expected *model.Error, got %T", err)
	}
	if me.Type != model.ErrInvalidConfiguration {
		t.Errorf("expected invalid_configuration, got %s", me.Type)
	}
}
