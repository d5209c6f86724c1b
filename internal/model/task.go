package model

import (
	"encoding/json"
	"time"
)

// LocationDetails pins a task to a spot inside the frame.
type LocationDetails struct {
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	CoveragePercentage float64 `json:"coveragePercentage"`
}

// Task is one persisted cleanup task, created once per admitted detection.
// Assignment and processing flags are defaults for the dispatch system to
// flip; this service never mutates a task after creation.
type Task struct {
	ID              string          `json:"id"`
	Size            int             `json:"size"` // bbox area in px²
	Department      string          `json:"department"`
	Severity        string          `json:"severity"`
	Priority        string          `json:"priority"`
	Location        string          `json:"location"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	Assigned        bool            `json:"assigned"`
	AssignedWorker  *string         `json:"assignedWorker"`
	Processing      bool            `json:"processing"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	ImagePath       string          `json:"imagePath"`
	Details         LocationDetails `json:"locationDetails"`
	ConfidenceScore float64         `json:"confidenceScore"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatusIncomplete is the initial status of every new task.
const StatusIncomplete = "Incomplete"

// ToJSON serializes the task for the feed and event producers.
func (t *Task) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}
