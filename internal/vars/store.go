// Package vars implements the build-scoped variable store pipeline
// steps use to hand values to each other.
package vars

import (
	"context"
	"fmt"
	"sync"

	"github.com/aloftlabs/aloft/internal/logger"
)

// KeyInstanceID is the variable under which a launch stores the id of
// the instance it started. Later steps of the same build resolve the
// instance through it.
const KeyInstanceID = "instance-id"

// Store is a build-scoped key/value store. Within one build the last
// write to a key wins.
type Store interface {
	// Get returns the value of key; found reports whether it is set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes key to value, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps variables in process memory. It serves tests and
// one-shot invocations that never share state across processes.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value of key
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("variable key cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found := s.values[key]
	return value, found, nil
}

// Set writes key to value
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("variable key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, replaced := s.values[key]
	s.values[key] = value

	logSave(key, value, replaced)
	return nil
}

func logSave(key, value string, replaced bool) {
	logger.Infof("Saving build variable %s with value %s", key, value)
	if replaced {
		logger.Debugf("Build variable %s replaced a previous value", key)
	}
}
