package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelsec/xward/internal/config"
	"github.com/kestrelsec/xward/internal/policy"
	"github.com/kestrelsec/xward/internal/registry"
)

var toolsAll bool

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(profilesCmd)
	toolsCmd.Flags().BoolVar(&toolsAll, "all", false, "List the full catalog, ignoring the active profile")
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List tools callable under the active profile",
	RunE:  runTools,
}

type toolReport struct {
	Name         string `json:"name"`
	Group        string `json:"group"`
	Risk         string `json:"risk"`
	RateCategory string `json:"rate_category,omitempty"`
	Unsupported  bool   `json:"unsupported,omitempty"`
	Description  string `json:"description"`
}

func runTools(cmd *cobra.Command, args []string) error {
	reg := registry.Default()

	names := reg.Names()
	if !toolsAll {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		eff, err := policy.Resolve(reg, cfg.PolicySpec())
		if err != nil {
			return err
		}
		names = eff.AllowedTools()
	}

	reports := make([]toolReport, 0, len(names))
	for _, name := range names {
		desc, ok := reg.Describe(name)
		if !ok {
			continue
		}
		reports = append(reports, toolReport{
			Name:         desc.Name,
			Group:        string(desc.Group),
			Risk:         desc.Tier.String(),
			RateCategory: desc.RateCategory,
			Unsupported:  desc.Unsupported,
			Description:  desc.Description,
		})
	}

	out, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(out))
	return nil
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List permission profiles and the groups they grant",
	Run: func(cmd *cobra.Command, args []string) {
		type profileReport struct {
			Name        string   `json:"name"`
			Groups      []string `json:"groups"`
			Description string   `json:"description"`
		}

		reports := make([]profileReport, 0, len(policy.AllProfiles()))
		for _, p := range policy.AllProfiles() {
			groups := make([]string, 0)
			for _, g := range p.Groups() {
				groups = append(groups, string(g))
			}
			reports = append(reports, profileReport{
				Name:        string(p),
				Groups:      groups,
				Description: policy.Descriptions[p],
			})
		}

		out, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Println(string(out))
	},
}
