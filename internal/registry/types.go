package registry

import "fmt"

// Group is a fixed category of related tools sharing a risk tier.
type Group string

const (
	GroupResearch      Group = "research"
	GroupEngage        Group = "engage"
	GroupPublish       Group = "publish"
	GroupSocial        Group = "social"
	GroupConversations Group = "conversations"
	GroupLists         Group = "lists"
	GroupDMs           Group = "dms"
	GroupAccount       Group = "account"
)

// AllGroups returns every declared group in catalog order.
func AllGroups() []Group {
	return []Group{
		GroupResearch,
		GroupEngage,
		GroupPublish,
		GroupSocial,
		GroupConversations,
		GroupLists,
		GroupDMs,
		GroupAccount,
	}
}

// ParseGroup maps a string to a Group. Returns false for unknown names.
func ParseGroup(s string) (Group, bool) {
	switch Group(s) {
	case GroupResearch, GroupEngage, GroupPublish, GroupSocial,
		GroupConversations, GroupLists, GroupDMs, GroupAccount:
		return Group(s), true
	}
	return "", false
}

// RiskTier is an ordinal risk classification. Higher tier = more sensitive.
type RiskTier int

const (
	TierSafe RiskTier = iota
	TierLow
	TierMedium
	TierHigh
)

func (t RiskTier) String() string {
	switch t {
	case TierSafe:
		return "safe"
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// GroupRisk maps each group to its risk tier.
var GroupRisk = map[Group]RiskTier{
	GroupResearch:      TierSafe,
	GroupConversations: TierSafe,
	GroupEngage:        TierLow,
	GroupLists:         TierLow,
	GroupPublish:       TierMedium,
	GroupSocial:        TierMedium,
	GroupDMs:           TierHigh,
	GroupAccount:       TierHigh,
}

// GroupDescriptions gives a one-line summary per group for CLI output.
var GroupDescriptions = map[Group]string{
	GroupResearch:      "Search, lookup users/tweets, read timelines",
	GroupEngage:        "Like, bookmark, retweet",
	GroupPublish:       "Post tweets, threads, polls",
	GroupSocial:        "Follow, block, mute users",
	GroupConversations: "Read threads, manage replies",
	GroupLists:         "Create and manage lists",
	GroupDMs:           "Send and read direct messages",
	GroupAccount:       "Update profile and settings",
}

// Descriptor describes one tool in the static catalog. Immutable after
// process start.
type Descriptor struct {
	Name        string
	Group       Group
	Tier        RiskTier
	Description string

	// RateCategory names the local rate bucket this tool draws from.
	// Empty means the tool bypasses rate limiting.
	RateCategory string

	// Unsupported marks capabilities the upstream platform does not expose
	// programmatically. These short-circuit before policy resolution.
	Unsupported bool
}
