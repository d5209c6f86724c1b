package repository

import (
	"smartwaste/internal/dto"
	"smartwaste/internal/model"
)

// TaskRepository defines the interface for task record operations.
// Insert assigns and returns the record identifier.
type TaskRepository interface {
	// Create operations
	Insert(task *model.Task) (string, error)

	// Read operations
	GetByID(id string) (*model.Task, error)
	GetAll(filter *dto.TaskFilters) ([]model.Task, error)
	GetTotalCount(filter *dto.TaskFilters) (int, error)

	// Delete operations
	DeleteAll() error
}
