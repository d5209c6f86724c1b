package service

import "sync"

// gridCell identifies one coarse spatial bucket of the dedup grid.
type gridCell struct {
	X int
	Y int
}

// SiteTracker suppresses repeat detections of the same physical site by
// bucketing detection centers into fixed-size grid cells. Two detections
// landing in the same cell are treated as the same site; genuinely distinct
// objects inside one cell are merged, which is an accepted approximation.
//
// State grows until Reset and is safe for concurrent use: at most one
// admission per cell per reset epoch.
type SiteTracker struct {
	mu       sync.Mutex
	cellSize int
	seen     map[gridCell]struct{}
}

// NewSiteTracker creates a tracker with the given cell size in pixels.
func NewSiteTracker(cellSize int) *SiteTracker {
	return &SiteTracker{
		cellSize: cellSize,
		seen:     make(map[gridCell]struct{}),
	}
}

// Admit atomically checks and records the grid cell for a detection center.
// It returns true on the first sighting of a cell and false for every
// subsequent detection mapping to the same cell, until Reset.
func (t *SiteTracker) Admit(centerX, centerY float64) bool {
	key := gridCell{
		X: int(centerX / float64(t.cellSize)),
		Y: int(centerY / float64(t.cellSize)),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// Reset clears all tracked cells, starting a new monitoring session.
// Already-persisted tasks are unaffected.
func (t *SiteTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = make(map[gridCell]struct{})
}

// Len returns the number of distinct sites admitted since the last reset.
func (t *SiteTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
