package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartwaste/internal/dto"
	"smartwaste/internal/logger"
	"smartwaste/internal/model"
)

func seedRepo(t *testing.T, n int) *memTaskRepo {
	t.Helper()

	repo := &memTaskRepo{}
	for i := 0; i < n; i++ {
		_, err := repo.Insert(&model.Task{
			Department: "cleaning",
			Severity:   "Low",
			Priority:   "Medium",
			Status:     model.StatusIncomplete,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
	return repo
}

func TestListTasksHandler(t *testing.T) {
	repo := seedRepo(t, 3)
	handler := ListTasksHandler(repo, logger.New(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data dto.TasksData
	if err := json.NewDecoder(rec.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(data.Tasks) != 3 || data.Total != 3 {
		t.Errorf("tasks/total = %d/%d, want 3/3", len(data.Tasks), data.Total)
	}
	if data.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", data.CurrentPage)
	}
}

func TestListTasksHandler_ByID(t *testing.T) {
	repo := seedRepo(t, 1)
	handler := ListTasksHandler(repo, logger.New(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?id=task-1", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var task model.Task
	if err := json.NewDecoder(rec.Body).Decode(&task); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if task.ID != "task-1" {
		t.Errorf("ID = %q, want task-1", task.ID)
	}
}

func TestListTasksHandler_ByID_NotFound(t *testing.T) {
	repo := seedRepo(t, 0)
	handler := ListTasksHandler(repo, logger.New(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?id=missing", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListTasksHandler_EmptyListIsNotNull(t *testing.T) {
	repo := seedRepo(t, 0)
	handler := ListTasksHandler(repo, logger.New(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if string(payload["tasks"]) == "null" {
		t.Error("tasks should serialize as an empty array, not null")
	}
}
