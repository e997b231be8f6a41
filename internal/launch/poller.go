package launch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aloftlabs/aloft/internal/logger"
	"github.com/aloftlabs/aloft/internal/platform"
)

// Poller waits for an instance to reach a target status by fetching
// snapshots on a fixed interval.
type Poller struct {
	client   platform.Client
	interval time.Duration
}

// NewPoller creates a Poller that checks the instance every interval.
func NewPoller(client platform.Client, interval time.Duration) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
	}
}

// WaitForStatus polls until the instance reaches the expected status,
// reports StatusFailed, or the timeout budget is spent. It returns true
// only when the expected status was reached. A non-nil error means the
// polling itself broke (fetch failure or cancellation), never that the
// status was missed.
//
// The timeout bounds scheduling, not execution: no new fetch starts
// once it has elapsed, so a zero timeout returns before the first
// fetch. Waiting for StatusFailed itself is allowed and succeeds.
func (p *Poller) WaitForStatus(
	ctx context.Context,
	instance platform.Instance,
	expected platform.StatusCode,
	timeout time.Duration,
) (bool, error) {
	logger.Infof("Waiting up to %s for instance %s to reach status %s", timeout, instance.ID, expected)

	start := time.Now()
	for attempt := 1; ; attempt++ {
		logger.Infof("Attempt #%d", attempt)

		if err := ctx.Err(); err != nil {
			return false, err
		}
		if time.Since(start) >= timeout {
			logger.Warnf("Instance %s did not reach status %s within %s", instance.ID, expected, timeout)
			return false, nil
		}

		status, err := p.client.GetStatus(ctx, instance)
		if err != nil {
			return false, fmt.Errorf("error fetching status of instance %s: %w", instance.ID, err)
		}
		logStatus(status)

		if status.Status == expected {
			logger.Infof("Instance %s reached status %s", instance.ID, expected)
			return true, nil
		}
		if status.Status == platform.StatusFailed {
			logger.Warnf("Instance %s failed before reaching status %s", instance.ID, expected)
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

// logStatus writes one poll observation to the log: the status itself,
// the workflow tree, any return values published so far, and any error
// the platform reports.
func logStatus(status *platform.InstanceStatus) {
	logger.Infof("Instance %s status: %s", status.InstanceID, status.Status)

	if workflow := status.CurrentWorkflow; workflow != nil {
		logger.Infof("Workflow %s: %s", workflow.Name, workflow.Status)
		for _, step := range workflow.Steps {
			logger.Infof("  step %s: %s (%d%%)", step.Name, step.Status, step.PercentComplete)
		}
	}

	if len(status.ReturnValues) > 0 {
		if data, err := json.Marshal(status.ReturnValues); err == nil {
			logger.Infof("Return values so far: %s", data)
		}
	}

	if status.ErrorMessage != "" {
		logger.Warnf("Instance %s reports error: %s", status.InstanceID, status.ErrorMessage)
	}
}
