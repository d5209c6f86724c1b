package dto

import "smartwaste/internal/model"

// TasksData is a paginated response payload for the task listing.
type TasksData struct {
	Tasks       []model.Task `json:"tasks"`
	Total       int          `json:"total"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Limit       int          `json:"pageSize"`
}
