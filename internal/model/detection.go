package model

import (
	"bytes"
	"strconv"
)

// RawDetection is a single object prediction as returned by the inference
// service: center coordinates plus size in pixels, confidence on a 0-100
// scale. Discarded after normalization.
type RawDetection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// BoundingBox holds pixel-space corners and normalized values relative to
// the frame. XN and YN are floored at 0; WN and HN are plain ratios with no
// clamp, so boxes partially outside the frame can exceed 1. Downstream
// consumers compensate for that, so the asymmetry is kept as-is.
type BoundingBox struct {
	X1 int     `json:"x1"`
	Y1 int     `json:"y1"`
	X2 int     `json:"x2"`
	Y2 int     `json:"y2"`
	XN float64 `json:"xn"`
	YN float64 `json:"yn"`
	WN float64 `json:"wn"`
	HN float64 `json:"hn"`
}

// Prediction is a normalized detection as reported back to the caller.
// TaskID is set only when the detection produced a persisted task.
type Prediction struct {
	Class      string      `json:"class"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
	TaskID     string      `json:"taskId,omitempty"`
}

// FrameDim is a frame dimension that some model backends return as a JSON
// number and others as a string. Unparseable values decode to 0 and are
// replaced by the configured defaults in the pipeline.
type FrameDim int

func (d *FrameDim) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*d = 0
		return nil
	}
	*d = FrameDim(v)
	return nil
}

// FrameInfo describes the dimensions of the analyzed frame.
type FrameInfo struct {
	Width  FrameDim `json:"width"`
	Height FrameDim `json:"height"`
}

// InferenceResult is the full model output for one frame.
type InferenceResult struct {
	Predictions []RawDetection `json:"predictions"`
	Image       FrameInfo      `json:"image"`
}
