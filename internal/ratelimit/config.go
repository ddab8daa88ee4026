package ratelimit

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can say "15m" or "24h".
type Duration time.Duration

// UnmarshalYAML parses a duration string or a bare nanosecond integer.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML renders the duration in its compact string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Limit defines the ceiling for a single action category. Zero values mean
// no limit for that category.
type Limit struct {
	MaxRequests int      `yaml:"max_requests"`
	Window      Duration `yaml:"window"`
}

func (l Limit) enabled() bool {
	return l.MaxRequests > 0 && l.Window > 0
}

// Config maps action categories to their limits. Categories absent from the
// config are unlimited: the local guardrails are advisory defaults, the
// upstream platform's own limits remain authoritative.
type Config map[string]Limit

// DefaultConfig returns the built-in local guardrails. These are policy
// data, not algorithm behavior; any (limit, window) pair works.
func DefaultConfig() Config {
	return Config{
		"tweet_actions": {MaxRequests: 300, Window: Duration(15 * time.Minute)},
		"likes":         {MaxRequests: 1000, Window: Duration(24 * time.Hour)},
		"follows":       {MaxRequests: 400, Window: Duration(24 * time.Hour)},
		"dms":           {MaxRequests: 1000, Window: Duration(15 * time.Minute)},
		"lists":         {MaxRequests: 300, Window: Duration(15 * time.Minute)},
	}
}

// Merge overlays non-zero entries from other onto a copy of c.
func (c Config) Merge(other Config) Config {
	merged := make(Config, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
