package service

import (
	"fmt"
	"time"

	"smartwaste/internal/logger"
	"smartwaste/internal/model"
	"smartwaste/internal/repository"
)

// Geolocator resolves the camera position, returning nil coordinates when
// the position is unknown. Implementations never fail.
type Geolocator interface {
	Locate() (*float64, *float64)
}

// SnapshotStore persists the frame image that triggered a task.
type SnapshotStore interface {
	Save(filename string, frame []byte, pred model.Prediction) error
}

// TaskNotifier receives every created task. Notification is best-effort
// and must never block task creation.
type TaskNotifier interface {
	NotifyTaskCreated(task *model.Task)
}

// TaskBuilder turns one qualifying detection into a persisted task record,
// deduplicating by detection site. The dedup tracker insertion is the only
// state mutation; snapshot and notification side effects are best-effort,
// while a store write failure is surfaced to the caller.
type TaskBuilder struct {
	tracker   *SiteTracker
	tasks     repository.TaskRepository
	geo       Geolocator
	snapshots SnapshotStore
	notifiers []TaskNotifier
	cameraID  string
	logger    *logger.Logger
}

// NewTaskBuilder wires the builder with its collaborators. Notifiers are
// optional and may be empty.
func NewTaskBuilder(tracker *SiteTracker, tasks repository.TaskRepository, geo Geolocator,
	snapshots SnapshotStore, notifiers []TaskNotifier, cameraID string, logger *logger.Logger) *TaskBuilder {
	return &TaskBuilder{
		tracker:   tracker,
		tasks:     tasks,
		geo:       geo,
		snapshots: snapshots,
		notifiers: notifiers,
		cameraID:  cameraID,
		logger:    logger,
	}
}

// Build creates a task record for the detection unless its site was already
// seen. It returns the store-assigned identifier, or "" when the detection
// was deduplicated. A "" result with nil error is expected steady-state
// behavior, not a failure.
func (b *TaskBuilder) Build(pred model.Prediction, frameWidth, frameHeight int, frame []byte) (string, error) {
	bbox := pred.BBox
	centerX := float64(bbox.X1+bbox.X2) / 2
	centerY := float64(bbox.Y1+bbox.Y2) / 2

	if !b.tracker.Admit(centerX, centerY) {
		return "", nil
	}

	b.logger.Info("New detection '%s' at (x=%.0f, y=%.0f)", pred.Class, centerX, centerY)

	severity := ComputeSeverity(bbox.X1, bbox.Y1, bbox.X2, bbox.Y2, frameHeight, frameWidth)
	priority := ComputePriority(pred.Class, severity)

	width := bbox.X2 - bbox.X1
	height := bbox.Y2 - bbox.Y1
	size := width * height
	coverage := float64(size) / float64(frameHeight*frameWidth) * 100

	latitude, longitude := b.geo.Locate()

	filename := fmt.Sprintf("problem_detected_%s.jpg", time.Now().Format("20060102-150405"))
	if len(frame) > 0 {
		if err := b.snapshots.Save(filename, frame, pred); err != nil {
			b.logger.Warning("Could not save snapshot %s: %v", filename, err)
		}
	}

	task := &model.Task{
		Size:        size,
		Department:  Department(pred.Class),
		Severity:    string(severity),
		Priority:    string(priority),
		Location:    fmt.Sprintf("%s-%.0f-%.0f", b.cameraID, centerX, centerY),
		Latitude:    latitude,
		Longitude:   longitude,
		Status:      model.StatusIncomplete,
		Description: fmt.Sprintf("Detected %s with %.2f confidence.", pred.Class, pred.Confidence),
		ImagePath:   filename,
		Details: model.LocationDetails{
			X:                  centerX,
			Y:                  centerY,
			Width:              width,
			Height:             height,
			CoveragePercentage: coverage,
		},
		ConfidenceScore: pred.Confidence,
		CreatedAt:       time.Now(),
	}

	id, err := b.tasks.Insert(task)
	if err != nil {
		return "", fmt.Errorf("store task: %w", err)
	}
	task.ID = id

	b.logger.Info("Task stored: %s (%s/%s)", id, task.Department, task.Priority)

	for _, n := range b.notifiers {
		n.NotifyTaskCreated(task)
	}

	return id, nil
}
