package mock

import (
	"context"

	"github.com/aloftlabs/aloft/internal/platform"
)

// Client implements the platform.Client interface for testing
type Client struct {
	// Function fields that can be set to mock behavior
	UpdateManifestFn   func(ctx context.Context, app platform.Application, manifest platform.Manifest) (int, error)
	LaunchInstanceFn   func(ctx context.Context, spec platform.InstanceSpecification, settings platform.LaunchSettings) (*platform.Instance, error)
	GetStatusFn        func(ctx context.Context, instance platform.Instance) (*platform.InstanceStatus, error)
	ListApplicationsFn func(ctx context.Context) ([]platform.Application, error)
	ListEnvironmentsFn func(ctx context.Context) ([]platform.Environment, error)

	// Call tracking for verification
	UpdateManifestCalls []struct {
		Ctx      context.Context
		App      platform.Application
		Manifest platform.Manifest
	}
	LaunchInstanceCalls []struct {
		Ctx      context.Context
		Spec     platform.InstanceSpecification
		Settings platform.LaunchSettings
	}
	GetStatusCalls []struct {
		Ctx      context.Context
		Instance platform.Instance
	}
	ListApplicationsCalls []struct {
		Ctx context.Context
	}
	ListEnvironmentsCalls []struct {
		Ctx context.Context
	}
}

// Ensure Client implements the platform.Client interface
var _ platform.Client = (*Client)(nil)

// UpdateManifest mocks the UpdateManifest method
func (m *Client) UpdateManifest(ctx context.Context, app platform.Application, manifest platform.Manifest) (int, error) {
	// Record this call
	m.UpdateManifestCalls = append(m.UpdateManifestCalls, struct {
		Ctx      context.Context
		App      platform.Application
		Manifest platform.Manifest
	}{
		Ctx:      ctx,
		App:      app,
		Manifest: manifest,
	})

	// Return mock implementation if provided
	if m.UpdateManifestFn != nil {
		return m.UpdateManifestFn(ctx, app, manifest)
	}

	// Default mock implementation
	return 1, nil
}

// LaunchInstance mocks the LaunchInstance method
func (m *Client) LaunchInstance(ctx context.Context, spec platform.InstanceSpecification, settings platform.LaunchSettings) (*platform.Instance, error) {
	// Record this call
	m.LaunchInstanceCalls = append(m.LaunchInstanceCalls, struct {
		Ctx      context.Context
		Spec     platform.InstanceSpecification
		Settings platform.LaunchSettings
	}{
		Ctx:      ctx,
		Spec:     spec,
		Settings: settings,
	})

	// Return mock implementation if provided
	if m.LaunchInstanceFn != nil {
		return m.LaunchInstanceFn(ctx, spec, settings)
	}

	// Default mock implementation
	return &platform.Instance{ID: "instance-1"}, nil
}

// GetStatus mocks the GetStatus method
func (m *Client) GetStatus(ctx context.Context, instance platform.Instance) (*platform.InstanceStatus, error) {
	// Record this call
	m.GetStatusCalls = append(m.GetStatusCalls, struct {
		Ctx      context.Context
		Instance platform.Instance
	}{
		Ctx:      ctx,
		Instance: instance,
	})

	// Return mock implementation if provided
	if m.GetStatusFn != nil {
		return m.GetStatusFn(ctx, instance)
	}

	// Default mock implementation
	return &platform.InstanceStatus{
		InstanceID: instance.ID,
		Status:     platform.StatusRunning,
	}, nil
}

// ListApplications mocks the ListApplications method
func (m *Client) ListApplications(ctx context.Context) ([]platform.Application, error) {
	// Record this call
	m.ListApplicationsCalls = append(m.ListApplicationsCalls, struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	})

	// Return mock implementation if provided
	if m.ListApplicationsFn != nil {
		return m.ListApplicationsFn(ctx)
	}

	// Default mock implementation
	return []platform.Application{
		{ID: "app-1", Name: "Sample Application"},
		{ID: "app-2", Name: "Another Application"},
	}, nil
}

// ListEnvironments mocks the ListEnvironments method
func (m *Client) ListEnvironments(ctx context.Context) ([]platform.Environment, error) {
	// Record this call
	m.ListEnvironmentsCalls = append(m.ListEnvironmentsCalls, struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	})

	// Return mock implementation if provided
	if m.ListEnvironmentsFn != nil {
		return m.ListEnvironmentsFn(ctx)
	}

	// Default mock implementation
	return []platform.Environment{
		{ID: "env-1", Name: "default"},
	}, nil
}
