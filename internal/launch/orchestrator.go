package launch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aloftlabs/aloft/internal/artifact"
	"github.com/aloftlabs/aloft/internal/config"
	"github.com/aloftlabs/aloft/internal/db/models"
	"github.com/aloftlabs/aloft/internal/logger"
	"github.com/aloftlabs/aloft/internal/manifest"
	"github.com/aloftlabs/aloft/internal/platform"
	"github.com/aloftlabs/aloft/internal/vars"
)

// Orchestrator runs a complete launch: manifest staging and upload, the
// launch call, status polling, and result export. One Orchestrator can
// serve many runs; all per-run state lives in Params and the Report.
type Orchestrator struct {
	cfg      *config.Config
	client   platform.Client
	store    vars.Store
	stager   *manifest.Stager
	poller   *Poller
	exporter *Exporter
	recorder *Recorder
}

// NewOrchestrator wires an Orchestrator from its dependencies. The
// recorder may be nil, which turns run history off.
func NewOrchestrator(
	cfg *config.Config,
	client platform.Client,
	store vars.Store,
	stager *manifest.Stager,
	storage artifact.Storage,
	recorder *Recorder,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		client:   client,
		store:    store,
		stager:   stager,
		poller:   NewPoller(client, cfg.Polling.Interval()),
		exporter: NewExporter(client, storage),
		recorder: recorder,
	}
}

// Run executes one launch from validation through result export. The
// returned Report is never nil. The error is non-nil exactly when the
// report is fatal; a tolerated miss returns a nil error.
func (o *Orchestrator) Run(ctx context.Context, params Params) (*Report, error) {
	if err := o.cfg.Validate(); err != nil {
		return o.fail(ctx, nil, "", err)
	}

	params, err := o.expandParams(ctx, params)
	if err != nil {
		return o.fail(ctx, nil, "", err)
	}
	if params.ApplicationID == "" {
		return o.fail(ctx, nil, "", errors.New("application id is required"))
	}
	if params.ExpectedStatus == "" {
		params.ExpectedStatus = platform.StatusRunning
	}

	version := 0
	if params.ManifestPath != "" {
		version, err = o.uploadManifest(ctx, params)
		if err != nil {
			return o.fail(ctx, nil, "", err)
		}
	}

	parameters, err := parseParameters(params.ExtraParameters)
	if err != nil {
		return o.fail(ctx, nil, "", err)
	}

	logger.Infof("Launching application %s", params.ApplicationID)
	instance, err := o.client.LaunchInstance(ctx,
		platform.InstanceSpecification{
			Application: platform.Application{ID: params.ApplicationID},
			Version:     version,
		},
		platform.LaunchSettings{
			Environment: platform.Environment{ID: params.EnvironmentID},
			Parameters:  parameters,
		})
	if err != nil {
		return o.fail(ctx, nil, "", fmt.Errorf("error launching application %s: %w", params.ApplicationID, err))
	}
	logger.Infof("Launched instance %s of application %s", instance.ID, params.ApplicationID)

	// The id goes to the store before any waiting so later steps can
	// find the instance even when this run fails from here on.
	if err := o.store.Set(ctx, vars.KeyInstanceID, instance.ID); err != nil {
		return o.fail(ctx, nil, instance.ID, fmt.Errorf("error saving instance id: %w", err))
	}

	run := o.recordStarted(ctx, params, *instance)

	reached, err := o.poller.WaitForStatus(ctx, *instance, params.ExpectedStatus, params.Timeout)
	if err != nil {
		return o.fail(ctx, run, instance.ID, err)
	}
	if !reached {
		return o.missed(ctx, run, *instance, params)
	}

	if err := o.waitReturnValues(ctx); err != nil {
		return o.fail(ctx, run, instance.ID, err)
	}
	if err := o.exporter.Export(ctx, *instance, params.OutputPath); err != nil {
		return o.fail(ctx, run, instance.ID, err)
	}

	report := &Report{
		Result:     ResultSucceeded,
		InstanceID: instance.ID,
		Status:     params.ExpectedStatus,
	}
	o.recordFinished(ctx, run, report)
	logger.Infof("Launch of application %s finished: instance %s is %s",
		params.ApplicationID, instance.ID, params.ExpectedStatus)
	return report, nil
}

// expandParams resolves ${NAME} placeholders in the string fields that
// accept them, so one step can launch from values an earlier step
// saved. The store wins over the process environment.
func (o *Orchestrator) expandParams(ctx context.Context, params Params) (Params, error) {
	lookups := []vars.Lookup{vars.StoreLookup(o.store), vars.EnvLookup()}

	fields := []*string{
		&params.ApplicationID,
		&params.EnvironmentID,
		&params.ManifestPath,
		&params.ExtraParameters,
		&params.OutputPath,
	}
	for _, field := range fields {
		expanded, err := vars.Expand(ctx, *field, lookups...)
		if err != nil {
			return params, err
		}
		*field = expanded
	}
	return params, nil
}

// uploadManifest stages the manifest, pushes it to the platform, and
// returns the new manifest version. The staged copy is removed as soon
// as its content has been read, before the remote call, and also when
// the read fails.
func (o *Orchestrator) uploadManifest(ctx context.Context, params Params) (int, error) {
	staged, err := o.stager.Stage(params.ManifestPath)
	if err != nil {
		return 0, err
	}

	content, readErr := o.stager.Read(staged)
	if err := o.stager.Remove(staged); err != nil {
		logger.Warnf("Could not remove staged manifest: %v", err)
	}
	if readErr != nil {
		return 0, readErr
	}

	version, err := o.client.UpdateManifest(ctx,
		platform.Application{ID: params.ApplicationID},
		platform.Manifest{Content: content})
	if err != nil {
		return 0, fmt.Errorf("error updating manifest of application %s: %w", params.ApplicationID, err)
	}

	logger.Infof("Updated application %s manifest to version %d", params.ApplicationID, version)
	return version, nil
}

// parseParameters decodes the extra-parameters JSON object. A blank
// string means no parameters.
func parseParameters(raw string) (map[string]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var parameters map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parameters); err != nil {
		return nil, fmt.Errorf("error parsing extra parameters: %w", err)
	}
	return parameters, nil
}

// missed closes out a run whose instance never reached the expected
// status. The configured reaction decides whether that stops the
// pipeline.
func (o *Orchestrator) missed(ctx context.Context, run *models.Run, instance platform.Instance, params Params) (*Report, error) {
	report := &Report{InstanceID: instance.ID}

	if params.FailureReaction.Tolerates() {
		report.Result = ResultUnstable
		logger.Warnf("Instance %s did not reach status %s, tolerated by the %s reaction",
			instance.ID, params.ExpectedStatus, params.FailureReaction)
		o.recordFinished(ctx, run, report)
		return report, nil
	}

	report.Result = ResultFailed
	report.Error = fmt.Sprintf("instance %s did not reach status %s", instance.ID, params.ExpectedStatus)
	logger.Error(report.Error)
	o.recordFinished(ctx, run, report)
	return report, errors.New(report.Error)
}

// waitReturnValues gives the platform a moment to publish return
// values before the final snapshot is taken. This is a consistency
// allowance, not a guarantee.
func (o *Orchestrator) waitReturnValues(ctx context.Context) error {
	grace := o.cfg.Polling.ReturnValuesGrace()
	if grace <= 0 {
		return nil
	}

	logger.Debugf("Waiting %s for return values to settle", grace)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(grace):
		return nil
	}
}

// fail logs err, closes out the run record, and builds the fatal
// report. The original error is returned alongside the report so
// callers can still inspect the cause.
func (o *Orchestrator) fail(ctx context.Context, run *models.Run, instanceID string, err error) (*Report, error) {
	logger.Errorf("Launch failed: %v", err)
	report := &Report{
		Result:     ResultFailed,
		InstanceID: instanceID,
		Error:      err.Error(),
	}
	o.recordFinished(ctx, run, report)
	return report, err
}

func (o *Orchestrator) recordStarted(ctx context.Context, params Params, instance platform.Instance) *models.Run {
	if o.recorder == nil {
		return nil
	}
	return o.recorder.started(ctx, params, instance.ID)
}

func (o *Orchestrator) recordFinished(ctx context.Context, run *models.Run, report *Report) {
	if o.recorder == nil {
		return
	}
	o.recorder.finished(ctx, run, report)
}
