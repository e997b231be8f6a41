// Package platform defines the client surface of the orchestration
// platform: the documents its API exchanges and the Client interface the
// launch pipeline is written against. Nothing above this package knows
// how requests travel.
package platform

// Application identifies an application registered on the platform.
// Name is only populated by the list operations.
type Application struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Environment identifies a target environment on the platform.
type Environment struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Instance is a running (or starting, or dead) copy of an application.
// The platform assigns the id at launch; it never changes afterwards.
type Instance struct {
	ID string `json:"id"`
}

// Manifest holds the raw content of an application manifest.
type Manifest struct {
	Content string
}

// InstanceSpecification selects what to launch: an application and a
// manifest version. Version 0 means the version currently associated
// with the application.
type InstanceSpecification struct {
	Application Application
	Version     int
}

// LaunchSettings selects where and how to launch: the target
// environment and the launch parameters handed to the manifest.
type LaunchSettings struct {
	Environment Environment
	Parameters  map[string]interface{}
}

// Workflow describes the workflow an instance is currently executing.
// Display data only; no decision is ever made on it.
type Workflow struct {
	Name   string         `json:"name"`
	Status string         `json:"status"`
	Steps  []WorkflowStep `json:"steps,omitempty"`
}

// WorkflowStep is one step of a workflow in progress.
type WorkflowStep struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	PercentComplete int    `json:"percentComplete"`
}

// InstanceStatus is a point-in-time snapshot of an instance as reported
// by the platform. Snapshots are never mutated locally.
type InstanceStatus struct {
	InstanceID      string                 `json:"instanceId"`
	ApplicationID   string                 `json:"applicationId"`
	Status          StatusCode             `json:"status"`
	CurrentWorkflow *Workflow              `json:"currentWorkflow,omitempty"`
	ReturnValues    map[string]interface{} `json:"returnValues,omitempty"`
	ErrorMessage    string                 `json:"errorMessage,omitempty"`
}
