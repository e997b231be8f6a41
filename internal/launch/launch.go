// Package launch drives the lifecycle of one application launch: push a
// manifest, start an instance, wait for it to reach a target status, and
// export what the instance returned. The package is written against the
// platform.Client interface and never touches the wire itself.
package launch

import (
	"strings"
	"time"

	"github.com/aloftlabs/aloft/internal/platform"
)

// Reaction selects what a missed expected status does to the run. Only
// ReactionFailure stops a pipeline; the other two tolerate the miss.
type Reaction string

const (
	// ReactionFailure fails the run. This is the default.
	ReactionFailure Reaction = "failure"
	// ReactionUnstable tolerates the miss and marks the run unstable.
	ReactionUnstable Reaction = "unstable"
	// ReactionSuccess tolerates the miss as well. It exists for
	// pipelines that treat the launch as strictly best-effort.
	ReactionSuccess Reaction = "success"
)

// ParseReaction maps a configured reaction string to a Reaction.
// Matching is case-insensitive; empty and unknown values fall back to
// ReactionFailure.
func ParseReaction(str string) Reaction {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case string(ReactionUnstable):
		return ReactionUnstable
	case string(ReactionSuccess):
		return ReactionSuccess
	default:
		return ReactionFailure
	}
}

// String returns the string representation of the reaction
func (r Reaction) String() string {
	return string(r)
}

// Tolerates reports whether a missed expected status is non-fatal under
// this reaction. Empty and unknown reactions do not tolerate anything.
func (r Reaction) Tolerates() bool {
	return r == ReactionUnstable || r == ReactionSuccess
}

// Result classifies a finished run.
type Result string

const (
	// ResultSucceeded means the instance reached the expected status
	// and the launch result was exported.
	ResultSucceeded Result = "succeeded"
	// ResultUnstable means the expected status was not reached but the
	// configured reaction tolerates it.
	ResultUnstable Result = "unstable"
	// ResultFailed means the run ended in a hard failure.
	ResultFailed Result = "failed"
)

// String returns the string representation of the result
func (r Result) String() string {
	return string(r)
}

// Report is the outcome of one run. The orchestrator always returns
// one, even when it also returns an error.
type Report struct {
	Result     Result              `json:"result"`
	InstanceID string              `json:"instanceId,omitempty"`
	Status     platform.StatusCode `json:"status,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// Fatal reports whether the run should stop whatever pipeline invoked
// it. A tolerated miss is not fatal.
func (r *Report) Fatal() bool {
	return r.Result == ResultFailed
}

// Params describes one launch request after all flag and environment
// handling is done. String fields may contain ${NAME} placeholders;
// the orchestrator expands them before use.
type Params struct {
	// BuildID scopes the variable store and the run history record.
	BuildID string
	// ApplicationID selects the application to launch. Required.
	ApplicationID string
	// EnvironmentID selects the target environment. Empty means the
	// platform picks the application's default environment.
	EnvironmentID string
	// ManifestPath points at a manifest to upload before launching.
	// Empty means launch whatever version the application already has.
	ManifestPath string
	// ExtraParameters is a JSON object of launch parameters, or empty.
	ExtraParameters string
	// ExpectedStatus is the status the instance must reach.
	ExpectedStatus platform.StatusCode
	// Timeout bounds the wait for ExpectedStatus. Zero expires the
	// wait before the first status fetch.
	Timeout time.Duration
	// OutputPath is where the launch result document is written.
	// Empty disables the export.
	OutputPath string
	// FailureReaction selects the consequence of a missed status.
	FailureReaction Reaction
}
