// Package config loads runtime configuration from environment variables and
// an optional YAML file. Policy inputs are threaded explicitly into each
// resolution call, so a reload takes effect on the next tool call without a
// process restart.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kestrelsec/xward/internal/policy"
	"github.com/kestrelsec/xward/internal/ratelimit"
)

// Environment variables. The XWARD_* names mirror the X_MCP_* variables of
// the upstream ecosystem so existing deployments translate one to one.
const (
	EnvProfile       = "XWARD_PROFILE"
	EnvGroups        = "XWARD_GROUPS"
	EnvDisabledTools = "XWARD_DISABLED_TOOLS"
	EnvEnabledTools  = "XWARD_ENABLED_TOOLS"
	EnvBearerToken   = "XWARD_BEARER_TOKEN"
)

// Config is one immutable snapshot of runtime configuration.
type Config struct {
	Profile       string           `yaml:"profile"`
	Groups        []string         `yaml:"groups"`
	DisabledTools []string         `yaml:"disabled_tools"`
	EnabledTools  []string         `yaml:"enabled_tools"`
	RateLimits    ratelimit.Config `yaml:"rate_limits"`
}

// FromEnv reads configuration from the process environment. The profile
// defaults to researcher: the least privileged bundle is the safe default.
func FromEnv() Config {
	return Config{
		Profile:       envOr(EnvProfile, "researcher"),
		Groups:        splitList(os.Getenv(EnvGroups)),
		DisabledTools: splitList(os.Getenv(EnvDisabledTools)),
		EnabledTools:  splitList(os.Getenv(EnvEnabledTools)),
		RateLimits:    ratelimit.DefaultConfig(),
	}
}

// Load builds a snapshot from the environment, then overlays the YAML file
// at path if one is given. File fields overwrite only what they specify;
// rate limits merge per category over the defaults.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.Profile != "" {
		cfg.Profile = file.Profile
	}
	if file.Groups != nil {
		cfg.Groups = file.Groups
	}
	if file.DisabledTools != nil {
		cfg.DisabledTools = file.DisabledTools
	}
	if file.EnabledTools != nil {
		cfg.EnabledTools = file.EnabledTools
	}
	if file.RateLimits != nil {
		cfg.RateLimits = ratelimit.DefaultConfig().Merge(file.RateLimits)
	}

	return cfg, nil
}

// PolicySpec converts the snapshot into resolution inputs. Names are
// normalized here so env and file configuration behave identically.
func (c Config) PolicySpec() policy.Spec {
	return policy.Spec{
		Profile:  strings.ToLower(strings.TrimSpace(c.Profile)),
		Groups:   normalize(c.Groups),
		Disabled: normalize(c.DisabledTools),
		Enabled:  normalize(c.EnabledTools),
	}
}

func normalize(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty items. Returns nil for an empty input.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
