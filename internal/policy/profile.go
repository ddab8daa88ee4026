package policy

import "github.com/kestrelsec/xward/internal/registry"

// Profile is a named bundle of permitted tool groups.
type Profile string

const (
	ProfileResearcher Profile = "researcher"
	ProfileCreator    Profile = "creator"
	ProfileManager    Profile = "manager"
	ProfileAutomation Profile = "automation"
	ProfileCustom     Profile = "custom"
)

// profileGroups defines which groups each fixed profile grants. The custom
// profile grants nothing by itself; its groups arrive with the request.
// Escalation is monotonic: researcher ⊂ creator ⊂ manager ⊂ automation.
var profileGroups = map[Profile][]registry.Group{
	ProfileResearcher: {
		registry.GroupResearch,
		registry.GroupConversations,
	},
	ProfileCreator: {
		registry.GroupResearch,
		registry.GroupEngage,
		registry.GroupPublish,
		registry.GroupConversations,
	},
	ProfileManager: {
		registry.GroupResearch,
		registry.GroupEngage,
		registry.GroupPublish,
		registry.GroupSocial,
		registry.GroupConversations,
		registry.GroupLists,
	},
	ProfileAutomation: {
		registry.GroupResearch,
		registry.GroupEngage,
		registry.GroupPublish,
		registry.GroupSocial,
		registry.GroupConversations,
		registry.GroupLists,
		registry.GroupDMs,
		registry.GroupAccount,
	},
	ProfileCustom: {},
}

// Descriptions documents each profile for CLI output.
var Descriptions = map[Profile]string{
	ProfileResearcher: "Read-only access for research, monitoring, and analysis. Safe for automation.",
	ProfileCreator:    "Post content and engage with your audience. No social actions (follow/block).",
	ProfileManager:    "Full account management including social actions and lists.",
	ProfileAutomation: "Full API access including DMs. Use with caution.",
	ProfileCustom:     "Specify exactly which tool groups to enable.",
}

// AllProfiles lists the fixed profiles plus custom, in escalation order.
func AllProfiles() []Profile {
	return []Profile{ProfileResearcher, ProfileCreator, ProfileManager, ProfileAutomation, ProfileCustom}
}

// ParseProfile maps a string to a Profile. Returns false for unknown names.
func ParseProfile(s string) (Profile, bool) {
	switch Profile(s) {
	case ProfileResearcher, ProfileCreator, ProfileManager, ProfileAutomation, ProfileCustom:
		return Profile(s), true
	}
	return "", false
}

// Groups returns the group set a fixed profile grants.
func (p Profile) Groups() []registry.Group {
	gs := profileGroups[p]
	out := make([]registry.Group, len(gs))
	copy(out, gs)
	return out
}
