package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelsec/xward/internal/config"
	"github.com/kestrelsec/xward/internal/gate"
	"github.com/kestrelsec/xward/internal/ratelimit"
	"github.com/kestrelsec/xward/internal/registry"
)

var checkConfig string

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkConfig, "config", "", "Path to YAML config")
}

var checkCmd = &cobra.Command{
	Use:   "check <tool>...",
	Short: "Dry-run the gate for one or more tools without executing them",
	Long: "Evaluates each named tool against the active profile and rate limits\n" +
		"and prints the verdict. Nothing is consumed and nothing is forwarded.",
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

type checkReport struct {
	Tool       string  `json:"tool"`
	Verdict    string  `json:"verdict"`
	Group      string  `json:"group,omitempty"`
	Risk       string  `json:"risk,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Message    string  `json:"message,omitempty"`
	RetryAfter float64 `json:"retry_after_seconds,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfig)
	if err != nil {
		return err
	}

	reg := registry.Default()
	g := gate.New(reg, ratelimit.New(cfg.RateLimits), nil)

	reports := make([]checkReport, 0, len(args))
	for _, tool := range args {
		res := g.Check(tool, cfg.PolicySpec(), time.Now().UTC())
		report := checkReport{
			Tool:    tool,
			Verdict: string(res.Verdict),
		}
		if res.Descriptor.Name != "" {
			report.Group = string(res.Descriptor.Group)
			report.Risk = res.Descriptor.Tier.String()
		}
		if res.Err != nil {
			report.Reason = string(res.Err.Type)
			report.Message = res.Err.Message
		}
		if res.RetryAfter > 0 {
			report.RetryAfter = res.RetryAfter.Seconds()
		}
		reports = append(reports, report)
	}

	out, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(out))
	return nil
}
