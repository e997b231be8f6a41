package launch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aloftlabs/aloft/internal/artifact"
	"github.com/aloftlabs/aloft/internal/logger"
	"github.com/aloftlabs/aloft/internal/platform"
)

// resultDocument is the JSON document written after a successful
// launch. ReturnValues is omitted when the manifest returned nothing.
type resultDocument struct {
	InstanceID    string                 `json:"instanceId"`
	ApplicationID string                 `json:"applicationId"`
	Status        platform.StatusCode    `json:"status"`
	ReturnValues  map[string]interface{} `json:"returnValues,omitempty"`
}

// Exporter captures a final instance snapshot and writes it out as a
// JSON document through artifact storage.
type Exporter struct {
	client  platform.Client
	storage artifact.Storage
}

// NewExporter creates an Exporter writing through storage.
func NewExporter(client platform.Client, storage artifact.Storage) *Exporter {
	return &Exporter{
		client:  client,
		storage: storage,
	}
}

// Export fetches the instance status once and writes the result
// document to path. An empty path disables the export entirely: no
// fetch, no write.
func (e *Exporter) Export(ctx context.Context, instance platform.Instance, path string) error {
	if path == "" {
		logger.Debug("No output path configured, skipping launch result export")
		return nil
	}

	status, err := e.client.GetStatus(ctx, instance)
	if err != nil {
		return fmt.Errorf("error fetching final status of instance %s: %w", instance.ID, err)
	}

	document := resultDocument{
		InstanceID:    status.InstanceID,
		ApplicationID: status.ApplicationID,
		Status:        status.Status,
		ReturnValues:  status.ReturnValues,
	}
	if document.InstanceID == "" {
		document.InstanceID = instance.ID
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding launch result: %w", err)
	}

	if err := e.storage.Write(path, data); err != nil {
		return fmt.Errorf("error writing launch result to %s: %w", path, err)
	}

	logger.Infof("Saved launch result to %s", path)
	return nil
}
