package dto

import "smartwaste/internal/model"

// DetectRequest is the POST /api/detect payload. Image is a base64 JPEG,
// optionally prefixed with a data-URL header.
type DetectRequest struct {
	Image string `json:"image"`
}

// DetectResponse aggregates one frame's processed detections.
// Count is the number of normalized predictions; Saved is how many of them
// survived deduplication and were persisted as tasks.
type DetectResponse struct {
	Predictions []model.Prediction `json:"predictions"`
	Count       int                `json:"count"`
	Saved       int                `json:"saved"`
}
