// Package artifact writes run artifacts to the places later pipeline
// steps look for them.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aloftlabs/aloft/internal/logger"
)

// Storage persists result documents produced by a run. Callers hand
// over the bytes exactly once; implementations decide where they land.
type Storage interface {
	Write(path string, data []byte) error
}

// FileStorage writes artifacts under the workspace root and, when a
// distinct mirror root is configured, writes the same bytes there too.
// The mirror covers pipelines whose next step runs on another node.
type FileStorage struct {
	workspace string
	mirror    string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a FileStorage. An empty mirror, or one equal
// to the workspace, disables mirroring.
func NewFileStorage(workspace, mirror string) *FileStorage {
	if mirror == workspace {
		mirror = ""
	}
	return &FileStorage{workspace: workspace, mirror: mirror}
}

// Write stores data under path. Relative paths resolve against the
// workspace root and are mirrored; absolute paths are written exactly
// once at their own location.
func (s *FileStorage) Write(path string, data []byte) error {
	if filepath.IsAbs(path) {
		return writeFile(path, data)
	}

	if err := writeFile(filepath.Join(s.workspace, path), data); err != nil {
		return err
	}

	if s.mirror != "" {
		if err := writeFile(filepath.Join(s.mirror, path), data); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing artifact %s: %w", path, err)
	}

	logger.Debugf("Wrote artifact %s (%d bytes)", path, len(data))
	return nil
}
