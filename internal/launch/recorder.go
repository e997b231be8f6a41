package launch

import (
	"context"

	"github.com/aloftlabs/aloft/internal/db/models"
	"github.com/aloftlabs/aloft/internal/db/repos"
	"github.com/aloftlabs/aloft/internal/logger"
	"github.com/aloftlabs/aloft/internal/platform"
)

// Recorder keeps run history in the database. Recording is best
// effort: database trouble is logged and never changes a run outcome.
type Recorder struct {
	repo *repos.RunRepository
}

// NewRecorder creates a Recorder backed by repo.
func NewRecorder(repo *repos.RunRepository) *Recorder {
	return &Recorder{repo: repo}
}

// started inserts the run row right after the platform assigned the
// instance id. A nil return means recording is off for this run.
func (r *Recorder) started(ctx context.Context, params Params, instanceID string) *models.Run {
	run := &models.Run{
		BuildID:       params.BuildID,
		ApplicationID: params.ApplicationID,
		EnvironmentID: params.EnvironmentID,
		InstanceID:    instanceID,
		Status:        string(platform.StatusLaunching),
	}
	if err := r.repo.Create(ctx, run); err != nil {
		logger.Warnf("Could not record run of instance %s: %v", instanceID, err)
		return nil
	}
	return run
}

// finished updates the run row with the final outcome. Uses a context
// detached from cancellation so an interrupted run still gets its row
// closed out.
func (r *Recorder) finished(ctx context.Context, run *models.Run, report *Report) {
	if run == nil {
		return
	}

	update := &models.Run{
		Status: string(report.Status),
		Result: models.RunResult(report.Result),
		Error:  report.Error,
	}
	if err := r.repo.Update(context.WithoutCancel(ctx), run.ID, update); err != nil {
		logger.Warnf("Could not update run record %d: %v", run.ID, err)
	}
}
