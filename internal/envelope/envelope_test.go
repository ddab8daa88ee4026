package envelope

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kestrelsec/xward/internal/gate"
	"github.com/kestrelsec/xward/internal/model"
	"github.com/kestrelsec/xward/internal/registry"
)

func fixedClock(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = orig })
}

func descFor(t *testing.T, name string) registry.Descriptor {
	t.Helper()
	reg, err := registry.New()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	d, ok := reg.Describe(name)
	if !ok {
		t.Fatalf("tool %s not in catalog", name)
	}
	return d
}

func TestSuccessShape(t *testing.T) {
	fixedClock(t)
	env := Success(descFor(t, "search_twitter"), map[string]any{"tweets": []any{}})

	if !env.OK {
		t.Error("expected ok=true")
	}
	if env.Error != nil {
		t.Error("expected no error on success")
	}
	if env.Tool != "search_twitter" {
		t.Errorf("expected tool name, got %q", env.Tool)
	}
	if env.Timestamp != "2025-06-01T12:00:00.000Z" {
		t.Errorf("unexpected timestamp %q", env.Timestamp)
	}
	if env.Advisory != "" {
		t.Error("research tools must not carry the advisory")
	}
}

func TestAdvisoryOnPublishAndSocial(t *testing.T) {
	fixedClock(t)
	for _, name := range []string{"post_tweet", "quote_tweet", "follow_user", "block_user"} {
		env := Success(descFor(t, name), map[string]any{"id": "1"})
		if env.Advisory == "" {
			t.Errorf("%s: expected advisory on publish/social success", name)
		}
	}
	for _, name := range []string{"favorite_tweet", "get_me", "create_list"} {
		env := Success(descFor(t, name), map[string]any{"id": "1"})
		if env.Advisory != "" {
			t.Errorf("%s: advisory must be limited to publish/social groups", name)
		}
	}
}

func TestDenialShape(t *testing.T) {
	fixedClock(t)
	env := Denial(gate.Result{
		Verdict: gate.Deny,
		Tool:    "post_tweet",
		Err:     model.NewPermissionDenied("post_tweet", "researcher"),
	})

	if env.OK {
		t.Error("expected ok=false")
	}
	if env.Error == nil || env.Error.Type != model.ErrPermissionDenied {
		t.Fatalf("expected permission_denied error, got %+v", env.Error)
	}
	if env.Error.Status != 403 {
		t.Errorf("expected status 403, got %d", env.Error.Status)
	}
	if env.Advisory != "" {
		t.Error("denials never carry the advisory")
	}
}

func TestDenialWithoutErrorStaysWellFormed(t *testing.T) {
	fixedClock(t)
	env := Denial(gate.Result{Verdict: gate.Deny, Tool: "post_tweet"})
	if env.Error == nil || env.Error.Type == "" {
		t.Error("envelope construction must not produce an untyped error")
	}
}

func TestRateLimitDenialCarriesRetryAfter(t *testing.T) {
	fixedClock(t)
	env := Denial(gate.Result{
		Verdict:    gate.Deny,
		Tool:       "post_tweet",
		Err:        model.NewRateLimited("tweet_actions", 55*time.Second),
		RetryAfter: 55 * time.Second,
	})
	if env.Error.Type != model.ErrRateLimited {
		t.Fatalf("expected rate_limit_exceeded, got %s", env.Error.Type)
	}
	if env.Error.Details["retry_after_seconds"] != 55 {
		t.Errorf("expected retry_after_seconds=55, got %v", env.Error.Details["retry_after_seconds"])
	}
}

func TestFailureCoercesOpaqueErrors(t *testing.T) {
	fixedClock(t)
	env := Failure("get_trends", errors.New("connection reset"))
	if env.OK {
		t.Error("expected ok=false")
	}
	if env.Error.Type != model.ErrUpstream {
		t.Errorf("expected upstream_error, got %s", env.Error.Type)
	}
	if env.Error.Details["error"] != "connection reset" {
		t.Errorf("expected original text in details, got %v", env.Error.Details)
	}
}

func TestFailurePreservesTypedErrors(t *testing.T) {
	fixedClock(t)
	env := Failure("post_tweet", model.NewInvalidConfiguration("missing bearer token"))
	if env.Error.Type != model.ErrInvalidConfiguration {
		t.Errorf("typed errors must pass through, got %s", env.Error.Type)
	}
}

func TestEnvelopeJSONOmitsEmptyFields(t *testing.T) {
	fixedClock(t)
	out, err := json.Marshal(Success(descFor(t, "get_me"), map[string]any{"id": "42"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	for _, absent := range []string{`"error"`, `"advisory"`} {
		if strings.Contains(s, absent) {
			t.Errorf("success envelope should omit %s, got %s", absent, s)
		}
	}
}
