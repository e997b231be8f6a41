// Package manifest stages application manifests into a directory every
// node of the pipeline can read.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aloftlabs/aloft/internal/logger"
)

// stagedSuffix is the fixed tail of every staged manifest name. The
// random uuid prefix keeps concurrent runs from colliding without
// locking.
const stagedSuffix = "project_manifest.yaml"

// ErrNotFound reports that the source manifest does not exist.
var ErrNotFound = errors.New("manifest file not found")

// Stager copies manifests into the staging root and removes them when
// the run is done with them. Staged copies live for one run only.
type Stager struct {
	root string
}

// NewStager creates a stager writing into root
func NewStager(root string) *Stager {
	return &Stager{root: root}
}

// Stage copies the manifest at source into the staging root under a
// unique name and returns the staged path. A missing source is
// reported as ErrNotFound before anything is written.
func (s *Stager) Stage(source string) (string, error) {
	info, err := os.Stat(source)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if err != nil {
		return "", fmt.Errorf("error checking manifest %s: %w", source, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, source)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("error reading manifest %s: %w", source, err)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("error creating staging root %s: %w", s.root, err)
	}

	staged := filepath.Join(s.root, uuid.NewString()+"."+stagedSuffix)
	if err := os.WriteFile(staged, content, 0o644); err != nil {
		return "", fmt.Errorf("error staging manifest to %s: %w", staged, err)
	}

	logger.Debugf("Staged manifest %s as %s", source, staged)
	return staged, nil
}

// Read returns the content of a staged manifest
func (s *Stager) Read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading staged manifest %s: %w", path, err)
	}
	return string(content), nil
}

// Remove deletes a staged manifest copy
func (s *Stager) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error removing staged manifest %s: %w", path, err)
	}
	logger.Debugf("Removed staged manifest %s", path)
	return nil
}
