package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for the run model
const (
	// RunCreatedAtField is the field name for the run creation time
	RunCreatedAtField = "created_at"
	// RunBuildIDField is the field name for the owning build
	RunBuildIDField = "build_id"
)

// RunResult classifies how a launch run ended
type RunResult string

// Run result constants
const (
	// RunResultUnknown means the run has not finished yet
	RunResultUnknown RunResult = "unknown"
	// RunResultSucceeded means the instance reached the expected status
	RunResultSucceeded RunResult = "succeeded"
	// RunResultUnstable means the expected status was missed but the
	// configured reaction lets the pipeline continue
	RunResultUnstable RunResult = "unstable"
	// RunResultFailed means the run ended in a hard failure
	RunResultFailed RunResult = "failed"
)

// Run records one launch: which build asked for it, what was launched,
// and how it ended. The record is created right after the platform
// assigns an instance id and updated exactly once when the run ends.
type Run struct {
	gorm.Model
	BuildID       string    `json:"build_id" gorm:"not null;index"`
	ApplicationID string    `json:"application_id" gorm:"not null;index"`
	EnvironmentID string    `json:"environment_id,omitempty"`
	InstanceID    string    `json:"instance_id" gorm:"index"`
	Status        string    `json:"status"` // last observed instance status
	Result        RunResult `json:"result" gorm:"not null;index"`
	Error         string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// String returns the string representation of the run result
func (r RunResult) String() string {
	return string(r)
}

// ParseRunResult converts a string to a RunResult type
func ParseRunResult(str string) (RunResult, error) {
	switch str {
	case string(RunResultUnknown):
		return RunResultUnknown, nil
	case string(RunResultSucceeded):
		return RunResultSucceeded, nil
	case string(RunResultUnstable):
		return RunResultUnstable, nil
	case string(RunResultFailed):
		return RunResultFailed, nil
	default:
		return RunResultUnknown, fmt.Errorf("invalid run result: %s", str)
	}
}

// Validate ensures that the run data is valid
func (r *Run) Validate() error {
	if r.BuildID == "" {
		return fmt.Errorf("run build id cannot be empty")
	}
	if r.ApplicationID == "" {
		return fmt.Errorf("run application id cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new run
func (r *Run) BeforeCreate(_ *gorm.DB) error {
	if r.Result == "" {
		r.Result = RunResultUnknown
	}
	return r.Validate()
}
