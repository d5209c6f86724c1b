package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartwaste/internal/dto"
	"smartwaste/internal/logger"
	"smartwaste/internal/model"
	"smartwaste/internal/service"
	"smartwaste/internal/service/inference"
)

// ========================================
// Test Setup Helpers
// ========================================

type memTaskRepo struct {
	tasks []*model.Task
}

func (r *memTaskRepo) Insert(task *model.Task) (string, error) {
	task.ID = fmt.Sprintf("task-%d", len(r.tasks)+1)
	r.tasks = append(r.tasks, task)
	return task.ID, nil
}

func (r *memTaskRepo) GetByID(id string) (*model.Task, error) {
	for _, task := range r.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, nil
}

func (r *memTaskRepo) GetAll(filter *dto.TaskFilters) ([]model.Task, error) {
	out := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, *task)
	}
	return out, nil
}

func (r *memTaskRepo) GetTotalCount(filter *dto.TaskFilters) (int, error) {
	return len(r.tasks), nil
}

func (r *memTaskRepo) DeleteAll() error {
	r.tasks = nil
	return nil
}

type stubGeo struct{}

func (stubGeo) Locate() (*float64, *float64) { return nil, nil }

type stubSnapshots struct{}

func (stubSnapshots) Save(filename string, frame []byte, pred model.Prediction) error {
	return nil
}

// fakeModelServer serves a canned inference response for every request.
func fakeModelServer(t *testing.T, status int, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
}

func setupDetectHandler(t *testing.T, modelURL string) (http.HandlerFunc, *service.SiteTracker, *memTaskRepo) {
	t.Helper()

	log := logger.New(t.TempDir())
	repo := &memTaskRepo{}
	tracker := service.NewSiteTracker(50)
	client := inference.NewClient(modelURL, "test-key", 40, 30, 5)
	builder := service.NewTaskBuilder(tracker, repo, stubGeo{}, stubSnapshots{}, nil, "CAM1", log)
	pipeline := service.NewPipeline(client, builder, log, 640, 480)

	return DetectHandler(pipeline, log), tracker, repo
}

func detectBody(t *testing.T) []byte {
	t.Helper()
	image := base64.StdEncoding.EncodeToString([]byte("fake jpeg bytes"))
	body, err := json.Marshal(dto.DetectRequest{Image: "data:image/jpeg;base64," + image})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	return body
}

const modelPayload = `{
	"predictions": [
		{"class": "garbage", "confidence": 85, "x": 100, "y": 100, "width": 40, "height": 40}
	],
	"image": {"width": "640", "height": "480"}
}`

// ========================================
// Detect Handler Tests
// ========================================

func TestDetectHandler_Success(t *testing.T) {
	server := fakeModelServer(t, http.StatusOK, modelPayload)
	defer server.Close()

	handler, _, repo := setupDetectHandler(t, server.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/detect", bytes.NewReader(detectBody(t)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.DetectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Count != 1 || resp.Saved != 1 {
		t.Errorf("count/saved = %d/%d, want 1/1", resp.Count, resp.Saved)
	}
	if resp.Predictions[0].TaskID == "" {
		t.Error("prediction should carry the stored task id")
	}
	if len(repo.tasks) != 1 {
		t.Errorf("stored tasks = %d, want 1", len(repo.tasks))
	}
}

func TestDetectHandler_MissingImage(t *testing.T) {
	handler, _, _ := setupDetectHandler(t, "http://localhost:0")

	req := httptest.NewRequest(http.MethodPost, "/api/detect", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDetectHandler_InvalidBase64(t *testing.T) {
	handler, _, _ := setupDetectHandler(t, "http://localhost:0")

	body, _ := json.Marshal(dto.DetectRequest{Image: "!!!not base64!!!"})
	req := httptest.NewRequest(http.MethodPost, "/api/detect", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDetectHandler_MethodNotAllowed(t *testing.T) {
	handler, _, _ := setupDetectHandler(t, "http://localhost:0")

	req := httptest.NewRequest(http.MethodGet, "/api/detect", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestDetectHandler_InferenceFailure(t *testing.T) {
	server := fakeModelServer(t, http.StatusInternalServerError, `{"error":"model exploded"}`)
	defer server.Close()

	handler, _, repo := setupDetectHandler(t, server.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/detect", bytes.NewReader(detectBody(t)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if len(repo.tasks) != 0 {
		t.Error("no tasks should be stored when inference fails")
	}
}

func TestResetDedupHandler(t *testing.T) {
	server := fakeModelServer(t, http.StatusOK, modelPayload)
	defer server.Close()

	log := logger.New(t.TempDir())
	handler, tracker, _ := setupDetectHandler(t, server.URL)
	reset := ResetDedupHandler(tracker, log)

	send := func() dto.DetectResponse {
		req := httptest.NewRequest(http.MethodPost, "/api/detect", bytes.NewReader(detectBody(t)))
		rec := httptest.NewRecorder()
		handler(rec, req)

		var resp dto.DetectResponse
		json.NewDecoder(rec.Body).Decode(&resp)
		return resp
	}

	if resp := send(); resp.Saved != 1 {
		t.Fatalf("first request saved = %d, want 1", resp.Saved)
	}
	if resp := send(); resp.Saved != 0 {
		t.Fatalf("repeat request saved = %d, want 0", resp.Saved)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/dedup/reset", nil)
	rec := httptest.NewRecorder()
	reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rec.Code)
	}

	if resp := send(); resp.Saved != 1 {
		t.Errorf("post-reset request saved = %d, want 1", resp.Saved)
	}
}

func TestHealthHandler(t *testing.T) {
	server := fakeModelServer(t, http.StatusOK, `{}`)
	defer server.Close()

	client := inference.NewClient(server.URL, "", 40, 30, 5)
	handler := HealthHandler(client)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["status"] != "ok" || resp["model"] != "loaded" {
		t.Errorf("unexpected health payload: %v", resp)
	}
}
