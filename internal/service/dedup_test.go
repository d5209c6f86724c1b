package service

import (
	"sync"
	"testing"
)

func TestSiteTracker_AdmitOncePerCell(t *testing.T) {
	tracker := NewSiteTracker(50)

	if !tracker.Admit(100, 100) {
		t.Fatal("first admit should succeed")
	}
	if tracker.Admit(100, 100) {
		t.Error("second admit for same point should be rejected")
	}
	if tracker.Admit(120, 110) {
		t.Error("admit for different point in same cell should be rejected")
	}
	if tracker.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tracker.Len())
	}
}

func TestSiteTracker_GridBoundaries(t *testing.T) {
	tracker := NewSiteTracker(50)

	// (49,49) and (0,0) share cell (0,0)
	if !tracker.Admit(49, 49) {
		t.Fatal("first admit should succeed")
	}
	if tracker.Admit(0, 0) {
		t.Error("(0,0) maps to the same cell as (49,49) and should be rejected")
	}

	// (50,0) crosses into cell (1,0)
	if !tracker.Admit(50, 0) {
		t.Error("(50,0) is a new cell and should be admitted")
	}
}

func TestSiteTracker_Reset(t *testing.T) {
	tracker := NewSiteTracker(50)

	tracker.Admit(100, 100)
	tracker.Admit(200, 200)
	if tracker.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tracker.Len())
	}

	tracker.Reset()

	if tracker.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", tracker.Len())
	}
	if !tracker.Admit(100, 100) {
		t.Error("previously rejected point should be admitted after reset")
	}
}

func TestSiteTracker_ConcurrentAdmit(t *testing.T) {
	tracker := NewSiteTracker(50)

	const goroutines = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Admit(25, 25) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 1 {
		t.Errorf("concurrent admits for one cell = %d admissions, want exactly 1", admitted)
	}
}
