package handler

import (
	"net/http"
	"strconv"

	"smartwaste/internal/dto"
	"smartwaste/internal/logger"
	"smartwaste/internal/model"
	"smartwaste/internal/repository"
)

// ListTasksHandler serves the persisted task records with filtering and
// pagination for the dispatch dashboard. Passing ?id= returns one task.
func ListTasksHandler(tasks repository.TaskRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if id := q.Get("id"); id != "" {
			task, err := tasks.GetByID(id)
			if err != nil {
				logger.Error("Error loading task %s: %v", id, err)
				respondError(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if task == nil {
				respondError(w, "Task not found", http.StatusNotFound)
				return
			}
			respondJSON(w, task, http.StatusOK)
			return
		}

		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		filter := &dto.TaskFilters{
			Department: q.Get("department"),
			Severity:   q.Get("severity"),
			Priority:   q.Get("priority"),
			Status:     q.Get("status"),
			Limit:      limit,
			Offset:     (page - 1) * limit,
		}

		records, err := tasks.GetAll(filter)
		if err != nil {
			logger.Error("Error loading tasks: %v", err)
			respondError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		total, err := tasks.GetTotalCount(filter)
		if err != nil {
			logger.Error("Error counting tasks: %v", err)
			respondError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if records == nil {
			records = []model.Task{}
		}

		totalPages := (total + limit - 1) / limit

		respondJSON(w, dto.TasksData{
			Tasks:       records,
			Total:       total,
			TotalPages:  totalPages,
			CurrentPage: page,
			Limit:       limit,
		}, http.StatusOK)
	}
}

// atoiDefault parses s as a positive integer, falling back to def.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
