// Package gate is the single choke point every tool call passes through.
// It combines the unsupported-operation check, policy resolution, and rate
// admission into one verdict; network I/O happens only after Proceed,
// outside this package.
package gate

import (
	"time"

	"go.uber.org/zap"

	"github.com/kestrelsec/xward/internal/model"
	"github.com/kestrelsec/xward/internal/policy"
	"github.com/kestrelsec/xward/internal/ratelimit"
	"github.com/kestrelsec/xward/internal/registry"
)

// Verdict is the gate's decision for one tool call.
type Verdict string

const (
	Proceed Verdict = "proceed"
	Deny    Verdict = "deny"
)

// Result carries the verdict plus everything the envelope builder needs.
type Result struct {
	Verdict    Verdict
	Tool       string
	Descriptor registry.Descriptor
	Profile    policy.Profile
	Err        *model.Error
	RetryAfter time.Duration
}

// Gate wires the registry, policy resolver, and rate limiter together.
type Gate struct {
	reg     *registry.Registry
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

// New creates a gate. The logger may be nil.
func New(reg *registry.Registry, limiter *ratelimit.Limiter, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{reg: reg, limiter: limiter, logger: logger}
}

// Authorize decides whether a tool call may proceed under the given policy
// spec at the given time. The order is deliberate and fixed:
//
//  1. unsupported-operation check (before policy: these are permanent)
//  2. policy resolution and authorization
//  3. rate admission
//
// An unauthorized caller never reaches the limiter, so denials neither
// consume budget nor leak remaining quota.
func (g *Gate) Authorize(tool string, spec policy.Spec, now time.Time) Result {
	return g.decide(tool, spec, now, true)
}

// Check is Authorize without consuming rate budget: a dry run reporting
// what the verdict would be right now.
func (g *Gate) Check(tool string, spec policy.Spec, now time.Time) Result {
	return g.decide(tool, spec, now, false)
}

func (g *Gate) decide(tool string, spec policy.Spec, now time.Time, consume bool) Result {
	desc, ok := g.reg.Describe(tool)
	if !ok {
		return Result{
			Verdict: Deny,
			Tool:    tool,
			Err:     model.NewInvalidConfiguration("unknown tool %q", tool),
		}
	}

	if desc.Unsupported {
		return Result{
			Verdict:    Deny,
			Tool:       tool,
			Descriptor: desc,
			Err:        model.NewUnsupported(tool),
		}
	}

	eff, err := policy.Resolve(g.reg, spec)
	if err != nil {
		return Result{
			Verdict:    Deny,
			Tool:       tool,
			Descriptor: desc,
			Err:        model.AsError(err),
		}
	}

	if !eff.Authorized(tool) {
		g.logger.Debug("tool denied by policy",
			zap.String("tool", tool),
			zap.String("profile", string(eff.Profile)))
		return Result{
			Verdict:    Deny,
			Tool:       tool,
			Descriptor: desc,
			Profile:    eff.Profile,
			Err:        model.NewPermissionDenied(tool, string(eff.Profile)),
		}
	}

	if desc.RateCategory == "" {
		return Result{Verdict: Proceed, Tool: tool, Descriptor: desc, Profile: eff.Profile}
	}

	var adm ratelimit.Admission
	if consume {
		adm = g.limiter.Admit(desc.RateCategory, now)
	} else {
		adm = g.limiter.Peek(desc.RateCategory, now)
	}
	if !adm.Allowed {
		g.logger.Debug("tool rate limited",
			zap.String("tool", tool),
			zap.String("category", desc.RateCategory),
			zap.Duration("retry_after", adm.RetryAfter))
		return Result{
			Verdict:    Deny,
			Tool:       tool,
			Descriptor: desc,
			Profile:    eff.Profile,
			Err:        model.NewRateLimited(desc.RateCategory, adm.RetryAfter),
			RetryAfter: adm.RetryAfter,
		}
	}

	return Result{Verdict: Proceed, Tool: tool, Descriptor: desc, Profile: eff.Profile}
}
