package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aloftlabs/aloft/internal/db/models"
)

// RunRepository provides access to run-related database operations
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run repository instance
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create creates a new run record in the database
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update updates a run record
func (r *RunRepository) Update(ctx context.Context, id uint, run *models.Run) error {
	return r.db.WithContext(ctx).Model(&models.Run{}).
		Where(&models.Run{Model: gorm.Model{ID: id}}).
		Updates(run).Error
}

// Get retrieves a run by ID
func (r *RunRepository) Get(ctx context.Context, id uint) (*models.Run, error) {
	var run models.Run
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetByInstanceID retrieves the run that launched the given instance
func (r *RunRepository) GetByInstanceID(ctx context.Context, instanceID string) (*models.Run, error) {
	var run models.Run
	err := r.db.WithContext(ctx).
		Where(&models.Run{InstanceID: instanceID}).
		First(&run).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get run for instance %s: %w", instanceID, err)
	}
	return &run, nil
}

// List returns runs newest first, optionally scoped to one build
func (r *RunRepository) List(ctx context.Context, buildID string, opts *models.ListOptions) ([]models.Run, error) {
	query := r.db.WithContext(ctx).Model(&models.Run{})

	if buildID != "" {
		query = query.Where(models.RunBuildIDField+" = ?", buildID)
	}

	query = query.Order(models.RunCreatedAtField + " DESC")
	query = applyListOptions(query, opts)

	var runs []models.Run
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// applyListOptions applies pagination to the given query
func applyListOptions(query *gorm.DB, opts *models.ListOptions) *gorm.DB {
	limit := models.DefaultLimit
	if opts != nil && opts.Limit > 0 {
		limit = opts.Limit
	}
	query = query.Limit(limit)

	if opts != nil && opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	return query
}
