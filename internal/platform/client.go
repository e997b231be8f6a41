package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Client defines the operations the launch pipeline needs from the
// platform. Status polling repeats GetStatus; every other operation is
// issued exactly once per run, so implementations must not retry.
type Client interface {
	// UpdateManifest uploads a manifest for the application and returns
	// the version the platform assigned to it.
	UpdateManifest(ctx context.Context, app Application, manifest Manifest) (int, error)

	// LaunchInstance starts a new instance of the application.
	LaunchInstance(ctx context.Context, spec InstanceSpecification, settings LaunchSettings) (*Instance, error)

	// GetStatus fetches the current snapshot of an instance.
	GetStatus(ctx context.Context, instance Instance) (*InstanceStatus, error)

	// ListApplications lists the applications visible to the account.
	ListApplications(ctx context.Context) ([]Application, error)

	// ListEnvironments lists the environments visible to the account.
	ListEnvironments(ctx context.Context) ([]Environment, error)
}

// ClientOptions contains configuration options for the API client
type ClientOptions struct {
	// BaseURL is the base URL of the platform API
	BaseURL string

	// Login and Password authenticate every request
	Login    string
	Password string
}

// APIClient implements the Client interface over the platform REST API
type APIClient struct {
	baseURL  string
	login    string
	password string
}

// NewClient creates a new API client with the given options
func NewClient(opts *ClientOptions) (Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("client options are required")
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		login:    opts.Login,
		password: opts.Password,
	}, nil
}

func manifestURL(appID string) string {
	return fmt.Sprintf("/api/1/applications/%s/manifest", url.PathEscape(appID))
}

func launchURL(appID string) string {
	return fmt.Sprintf("/api/1/applications/%s/launch", url.PathEscape(appID))
}

func instanceURL(instanceID string) string {
	return fmt.Sprintf("/api/1/instances/%s", url.PathEscape(instanceID))
}

const (
	applicationsURL = "/api/1/applications"
	environmentsURL = "/api/1/environments"
)

// launchRequest is the wire form of a launch call. A zero version is
// omitted so the platform falls back to the application's current one.
type launchRequest struct {
	EnvironmentID string                 `json:"environmentId,omitempty"`
	Version       int                    `json:"version,omitempty"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
}

type manifestResponse struct {
	Version int `json:"version"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Calls are bounded by the caller's polling loop, not by a transport
	// timeout, so only an explicit context deadline caps a request.
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	}

	agent.BasicAuth(c.login, c.password)
	agent.Set("Accept", "application/json")

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		apiErr := &APIError{
			Message: "unknown error",
			Status:  statusCode,
		}

		// Try to decode the error body; keep the generic message if the
		// platform sent something unreadable.
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		}

		return apiErr
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// UpdateManifest uploads a new manifest revision for the application
func (c *APIClient) UpdateManifest(ctx context.Context, app Application, manifest Manifest) (int, error) {
	agent, err := c.createAgent(ctx, http.MethodPut, manifestURL(app.ID))
	if err != nil {
		return 0, err
	}
	agent.ContentType("application/x-yaml")
	agent.BodyString(manifest.Content)

	var response manifestResponse
	if err := c.doRequest(agent, &response); err != nil {
		return 0, err
	}
	return response.Version, nil
}

// LaunchInstance starts a new instance of the application
func (c *APIClient) LaunchInstance(ctx context.Context, spec InstanceSpecification, settings LaunchSettings) (*Instance, error) {
	agent, err := c.createAgent(ctx, http.MethodPost, launchURL(spec.Application.ID))
	if err != nil {
		return nil, err
	}
	agent.JSON(launchRequest{
		EnvironmentID: settings.Environment.ID,
		Version:       spec.Version,
		Parameters:    settings.Parameters,
	})

	var response Instance
	if err := c.doRequest(agent, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetStatus retrieves the current status snapshot of an instance
func (c *APIClient) GetStatus(ctx context.Context, instance Instance) (*InstanceStatus, error) {
	agent, err := c.createAgent(ctx, http.MethodGet, instanceURL(instance.ID))
	if err != nil {
		return nil, err
	}

	var response InstanceStatus
	if err := c.doRequest(agent, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListApplications lists the applications visible to the account
func (c *APIClient) ListApplications(ctx context.Context) ([]Application, error) {
	agent, err := c.createAgent(ctx, http.MethodGet, applicationsURL)
	if err != nil {
		return nil, err
	}

	var response []Application
	if err := c.doRequest(agent, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// ListEnvironments lists the environments visible to the account
func (c *APIClient) ListEnvironments(ctx context.Context) ([]Environment, error) {
	agent, err := c.createAgent(ctx, http.MethodGet, environmentsURL)
	if err != nil {
		return nil, err
	}

	var response []Environment
	if err := c.doRequest(agent, &response); err != nil {
		return nil, err
	}
	return response, nil
}
