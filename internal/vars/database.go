package vars

import (
	"context"
	"fmt"

	"github.com/aloftlabs/aloft/internal/db/repos"
)

// DatabaseStore persists variables through the variable repository, so
// steps of the same build see them from any process or node.
type DatabaseStore struct {
	repo    *repos.VariableRepository
	buildID string
}

var _ Store = (*DatabaseStore)(nil)

// NewDatabaseStore creates a store scoped to one build
func NewDatabaseStore(repo *repos.VariableRepository, buildID string) *DatabaseStore {
	return &DatabaseStore{repo: repo, buildID: buildID}
}

// Get returns the value of key within the store's build
func (s *DatabaseStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("variable key cannot be empty")
	}

	variable, found, err := s.repo.Get(ctx, s.buildID, key)
	if err != nil || !found {
		return "", found, err
	}
	return variable.Value, true, nil
}

// Set writes key to value within the store's build
func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("variable key cannot be empty")
	}

	replaced, err := s.repo.Upsert(ctx, s.buildID, key, value)
	if err != nil {
		return err
	}

	logSave(key, value, replaced)
	return nil
}
