package service

import (
	"math"

	"smartwaste/internal/model"
)

// NormalizeDetection converts a raw center+size prediction into a Prediction
// with pixel corners and normalized coordinates. frameWidth and frameHeight
// must be positive; callers substitute the configured defaults beforehand.
//
// xn/yn are floored at 0 while wn/hn stay unclamped ratios, and no value has
// an upper clamp. Degenerate (zero or negative size) boxes normalize fine and
// simply yield ~0% coverage downstream.
func NormalizeDetection(raw model.RawDetection, frameWidth, frameHeight int) model.Prediction {
	x1 := int(raw.X - raw.Width/2)
	y1 := int(raw.Y - raw.Height/2)
	x2 := int(raw.X + raw.Width/2)
	y2 := int(raw.Y + raw.Height/2)

	fw := float64(frameWidth)
	fh := float64(frameHeight)

	bbox := model.BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
		XN: math.Max(0, float64(x1)/fw),
		YN: math.Max(0, float64(y1)/fh),
		WN: raw.Width / fw,
		HN: raw.Height / fh,
	}

	// Model confidence arrives on a 0-100 scale.
	confidence := math.Round(raw.Confidence/100*10000) / 10000

	return model.Prediction{
		Class:      raw.Class,
		Confidence: confidence,
		BBox:       bbox,
	}
}
