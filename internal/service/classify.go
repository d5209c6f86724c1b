package service

import "strings"

// Level is the three-step scale shared by severity and priority.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

var levelOrdinals = map[Level]int{
	LevelHigh:   3,
	LevelMedium: 2,
	LevelLow:    1,
}

// basePriorities maps object classes to their dispatch baseline.
// Unrecognized classes fall back to Low.
var basePriorities = map[string]Level{
	"spills":  LevelHigh,
	"garbage": LevelMedium,
	"bin":     LevelLow,
	"trash":   LevelLow,
}

// qualifyingClasses are the only classes that may produce tasks.
var qualifyingClasses = map[string]bool{
	"bin":     true,
	"garbage": true,
	"spills":  true,
	"trash":   true,
}

// ComputeSeverity grades a detection by the share of the frame it covers:
// at least 20% is High, at least 10% is Medium, anything smaller is Low.
// Callers guarantee x2 >= x1, y2 >= y1 and positive frame dimensions.
func ComputeSeverity(x1, y1, x2, y2, frameHeight, frameWidth int) Level {
	detectionArea := (x2 - x1) * (y2 - y1)
	frameArea := frameHeight * frameWidth
	pct := float64(detectionArea) / float64(frameArea) * 100

	switch {
	case pct >= 20:
		return LevelHigh
	case pct >= 10:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ComputePriority combines the class baseline with the computed severity.
// Severity can only escalate the priority above the baseline, never lower it.
func ComputePriority(className string, severity Level) Level {
	base, ok := basePriorities[strings.ToLower(className)]
	if !ok {
		base = LevelLow
	}
	if levelOrdinals[severity] > levelOrdinals[base] {
		return severity
	}
	return base
}

// Department routes a class to the responsible cleanup department.
func Department(className string) string {
	if strings.ToLower(className) == "spills" {
		return "spill"
	}
	return "cleaning"
}

// Qualifies reports whether a class is eligible for task creation.
func Qualifies(className string) bool {
	return qualifyingClasses[strings.ToLower(className)]
}
