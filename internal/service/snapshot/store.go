package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"smartwaste/internal/logger"
	"smartwaste/internal/model"
)

const thumbnailWidth = 320

// Store writes detection snapshots to the image directory. The triggering
// detection is drawn onto the frame before saving; if annotation fails the
// raw bytes are written instead. A downscaled thumbnail is saved alongside
// for the dashboard gallery.
type Store struct {
	imagesDir string
	logger    *logger.Logger
}

// NewStore creates the store and ensures the image directory exists.
func NewStore(imagesDir string, logger *logger.Logger) *Store {
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		log.Fatalf("Failed to create image directory: %v", err)
	}
	return &Store{imagesDir: imagesDir, logger: logger}
}

// Save persists the frame under the given filename, annotated with the
// prediction that produced the task. Returns an error only when nothing
// could be written at all.
func (s *Store) Save(filename string, frame []byte, pred model.Prediction) error {
	annotated, err := s.annotate(frame, pred)
	if err != nil {
		s.logger.Warning("Could not annotate snapshot %s: %v", filename, err)
		annotated = frame
	}

	path := filepath.Join(s.imagesDir, filename)
	if err := os.WriteFile(path, annotated, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.saveThumbnail(filename, annotated)
	return nil
}

// annotate draws the detection rectangle and label, returning re-encoded JPEG bytes.
func (s *Store) annotate(frame []byte, pred model.Prediction) ([]byte, error) {
	red := color.RGBA{R: 255, G: 0, B: 0, A: 0}

	mat, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	rect := image.Rect(pred.BBox.X1, pred.BBox.Y1, pred.BBox.X2, pred.BBox.Y2)
	if err := gocv.Rectangle(&mat, rect, red, 2); err != nil {
		return nil, fmt.Errorf("failed to draw rectangle: %w", err)
	}

	label := fmt.Sprintf("%s (%.2f)", pred.Class, pred.Confidence)
	pt := image.Pt(pred.BBox.X1, pred.BBox.Y1-5)
	if err := gocv.PutText(&mat, label, pt, gocv.FontHersheySimplex, 0.5, red, 1); err != nil {
		return nil, fmt.Errorf("failed to draw label: %w", err)
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	encoded := make([]byte, len(buf.GetBytes()))
	copy(encoded, buf.GetBytes())
	return encoded, nil
}

// saveThumbnail writes a gallery thumbnail next to the snapshot, best-effort.
func (s *Store) saveThumbnail(filename string, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Warning("Could not decode snapshot for thumbnail: %v", err)
		return
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(s.imagesDir, "thumb_"+filename)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		s.logger.Warning("Could not save thumbnail %s: %v", thumbPath, err)
	}
}
