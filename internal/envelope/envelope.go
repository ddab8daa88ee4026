// Package envelope normalizes every tool-call outcome (success, denial,
// downstream failure) into one response shape.
package envelope

import (
	"time"

	"github.com/kestrelsec/xward/internal/gate"
	"github.com/kestrelsec/xward/internal/model"
	"github.com/kestrelsec/xward/internal/registry"
)

// TimestampFormat is ISO-8601 UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Advisory is the non-blocking human-review recommendation attached to
// successful publish/social actions. It is an annotation, never an
// enforcement mechanism.
const Advisory = "Recommendation: Use AI to assist with research and drafts, " +
	"but keep a human review for posts and replies to preserve authenticity."

// Envelope is the sole output shape crossing the system boundary for every
// tool call. Callers treat ok=true with no error as success and branch on
// error.type otherwise.
type Envelope struct {
	OK        bool         `json:"ok"`
	Tool      string       `json:"tool"`
	Timestamp string       `json:"timestamp"`
	Error     *model.Error `json:"error,omitempty"`
	Data      any          `json:"data,omitempty"`
	Advisory  string       `json:"advisory,omitempty"`
}

// timeNow is replaced in tests.
var timeNow = time.Now

func stamp() string {
	return timeNow().UTC().Format(TimestampFormat)
}

// Success wraps a payload from the external collaborator. Publish- and
// social-group tools additionally carry the human-review advisory.
func Success(desc registry.Descriptor, payload any) Envelope {
	env := Envelope{
		OK:        true,
		Tool:      desc.Name,
		Timestamp: stamp(),
		Data:      payload,
	}
	if desc.Group == registry.GroupPublish || desc.Group == registry.GroupSocial {
		env.Advisory = Advisory
	}
	return env
}

// Denial wraps a gate verdict that blocked the call before any network I/O.
func Denial(res gate.Result) Envelope {
	err := res.Err
	if err == nil {
		// A denial without a typed error is a bug upstream; keep the
		// envelope well-formed anyway.
		err = model.NewUpstream(502, "denied without reason", nil)
	}
	return Envelope{
		Tool:      res.Tool,
		Timestamp: stamp(),
		Error:     err,
	}
}

// Failure wraps an error from the external collaborator after a Proceed
// verdict. Unknown errors are coerced into the upstream_error bucket.
func Failure(tool string, err error) Envelope {
	return Envelope{
		Tool:      tool,
		Timestamp: stamp(),
		Error:     model.AsError(err),
	}
}
