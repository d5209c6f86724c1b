package service

import (
	"fmt"

	"smartwaste/internal/dto"
	"smartwaste/internal/logger"
	"smartwaste/internal/model"
)

// InferenceClient is the external model collaborator: one frame in, raw
// detections plus frame dimensions out.
type InferenceClient interface {
	Predict(image []byte) (*model.InferenceResult, error)
}

// Pipeline is the top-level entry point for one frame's detection run.
type Pipeline struct {
	inference InferenceClient
	builder   *TaskBuilder
	logger    *logger.Logger

	defaultFrameWidth  int
	defaultFrameHeight int
}

// NewPipeline creates the frame processing pipeline. The default frame
// dimensions are the fallback used when the model omits or mangles them.
func NewPipeline(inference InferenceClient, builder *TaskBuilder, logger *logger.Logger,
	defaultFrameWidth, defaultFrameHeight int) *Pipeline {
	return &Pipeline{
		inference:          inference,
		builder:            builder,
		logger:             logger,
		defaultFrameWidth:  defaultFrameWidth,
		defaultFrameHeight: defaultFrameHeight,
	}
}

// ProcessFrame runs inference on the frame and processes the result.
// An inference failure aborts the whole request with no partial results.
func (p *Pipeline) ProcessFrame(frame []byte) (*dto.DetectResponse, error) {
	result, err := p.inference.Predict(frame)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	return p.Process(result, frame), nil
}

// Process normalizes every raw detection and offers qualifying ones to the
// task builder. All detections appear in the response regardless of class;
// per-detection persistence failures are logged and skipped, never aborting
// the rest of the frame.
func (p *Pipeline) Process(result *model.InferenceResult, frame []byte) *dto.DetectResponse {
	frameWidth := int(result.Image.Width)
	if frameWidth <= 0 {
		frameWidth = p.defaultFrameWidth
	}
	frameHeight := int(result.Image.Height)
	if frameHeight <= 0 {
		frameHeight = p.defaultFrameHeight
	}

	predictions := make([]model.Prediction, 0, len(result.Predictions))
	saved := 0

	for _, raw := range result.Predictions {
		pred := NormalizeDetection(raw, frameWidth, frameHeight)

		// Accepting all non-negative confidences is deliberate; the
		// model-side cutoff already filtered the noise.
		if Qualifies(pred.Class) && pred.Confidence >= 0 {
			id, err := p.builder.Build(pred, frameWidth, frameHeight, frame)
			if err != nil {
				p.logger.Error("Failed to store task for '%s': %v", pred.Class, err)
			} else if id != "" {
				pred.TaskID = id
				saved++
			}
		}

		predictions = append(predictions, pred)
	}

	return &dto.DetectResponse{
		Predictions: predictions,
		Count:       len(predictions),
		Saved:       saved,
	}
}
