package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aloftlabs/aloft/internal/db/models"
)

// VariableRepository provides access to build variable operations
type VariableRepository struct {
	db *gorm.DB
}

// NewVariableRepository creates a new variable repository instance
func NewVariableRepository(db *gorm.DB) *VariableRepository {
	return &VariableRepository{db: db}
}

// Get retrieves a variable by build and name. The boolean reports
// whether the variable exists.
func (r *VariableRepository) Get(ctx context.Context, buildID, name string) (*models.Variable, bool, error) {
	var variable models.Variable
	err := r.db.WithContext(ctx).
		Where(&models.Variable{BuildID: buildID, Name: name}).
		First(&variable).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get variable %s: %w", name, err)
	}
	return &variable, true, nil
}

// Upsert writes a variable, replacing any previous value. The boolean
// reports whether an existing value was replaced. Each build has a
// single writer at a time, so read-then-write is safe here.
func (r *VariableRepository) Upsert(ctx context.Context, buildID, name, value string) (bool, error) {
	existing, found, err := r.Get(ctx, buildID, name)
	if err != nil {
		return false, err
	}

	if !found {
		variable := &models.Variable{BuildID: buildID, Name: name, Value: value}
		if err := r.db.WithContext(ctx).Create(variable).Error; err != nil {
			return false, fmt.Errorf("failed to create variable %s: %w", name, err)
		}
		return false, nil
	}

	err = r.db.WithContext(ctx).Model(&models.Variable{}).
		Where(&models.Variable{Model: gorm.Model{ID: existing.ID}}).
		Update(models.VariableValueField, value).Error
	if err != nil {
		return false, fmt.Errorf("failed to update variable %s: %w", name, err)
	}
	return true, nil
}

// ListByBuildID returns all variables of a build
func (r *VariableRepository) ListByBuildID(ctx context.Context, buildID string) ([]models.Variable, error) {
	var variables []models.Variable
	err := r.db.WithContext(ctx).
		Where(&models.Variable{BuildID: buildID}).
		Order(models.VariableNameField + " ASC").
		Find(&variables).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}
	return variables, nil
}
