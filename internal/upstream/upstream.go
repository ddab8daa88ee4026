// Package upstream forwards admitted tool calls to the X API v2. The
// gatekeeper never inspects or rewrites caller arguments beyond routing;
// payload validation is the platform's job.
package upstream

import (
	"context"

	"github.com/kestrelsec/xward/internal/model"
)

// Invoker executes an admitted tool call against the platform and returns
// the raw response payload.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args map[string]any) (any, error)
}

// Unconfigured is an Invoker for deployments without platform credentials.
// Every call fails with invalid_configuration so the policy and rate-limit
// layers can still be exercised end to end.
type Unconfigured struct{}

func (Unconfigured) Invoke(ctx context.Context, tool string, args map[string]any) (any, error) {
	return nil, model.NewInvalidConfiguration("no bearer token configured: set %s or TWITTER_BEARER_TOKEN", "XWARD_BEARER_TOKEN")
}
