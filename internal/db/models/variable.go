package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Field names for the variable model
const (
	// VariableBuildIDField is the field name for the owning build
	VariableBuildIDField = "build_id"
	// VariableNameField is the field name for the variable name
	VariableNameField = "name"
	// VariableValueField is the field name for the variable value
	VariableValueField = "value"
)

// Variable is one build-scoped key/value pair. Pipeline steps of the
// same build run as separate processes, so values they want to share
// have to go through this table.
type Variable struct {
	gorm.Model
	BuildID string `json:"build_id" gorm:"not null;uniqueIndex:idx_variables_build_name"`
	Name    string `json:"name" gorm:"not null;uniqueIndex:idx_variables_build_name"`
	Value   string `json:"value" gorm:"type:text"`
}

// Validate ensures that the variable data is valid
func (v *Variable) Validate() error {
	if v.BuildID == "" {
		return fmt.Errorf("variable build id cannot be empty")
	}
	if v.Name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new variable
func (v *Variable) BeforeCreate(_ *gorm.DB) error {
	return v.Validate()
}
