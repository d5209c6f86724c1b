package service

import "testing"

func TestComputeSeverity(t *testing.T) {
	// 100x100 frame, area 10000
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           Level
	}{
		{"tiny box is low", 0, 0, 10, 10, LevelLow},
		{"just under 10 percent is low", 0, 0, 50, 19, LevelLow},
		{"exactly 10 percent is medium", 0, 0, 50, 20, LevelMedium},
		{"between thresholds is medium", 0, 0, 50, 39, LevelMedium},
		{"exactly 20 percent is high", 0, 0, 50, 40, LevelHigh},
		{"full frame is high", 0, 0, 100, 100, LevelHigh},
		{"zero area box is low", 30, 30, 30, 30, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSeverity(tt.x1, tt.y1, tt.x2, tt.y2, 100, 100)
			if got != tt.want {
				t.Errorf("ComputeSeverity(%d,%d,%d,%d) = %s, want %s",
					tt.x1, tt.y1, tt.x2, tt.y2, got, tt.want)
			}
		})
	}
}

func TestComputePriority(t *testing.T) {
	tests := []struct {
		class    string
		severity Level
		want     Level
	}{
		{"spills", LevelLow, LevelHigh},  // base dominates when higher
		{"spills", LevelHigh, LevelHigh},
		{"garbage", LevelLow, LevelMedium},
		{"garbage", LevelHigh, LevelHigh}, // severity escalates
		{"bin", LevelLow, LevelLow},
		{"bin", LevelHigh, LevelHigh},
		{"trash", LevelMedium, LevelMedium},
		{"unknown-class", LevelMedium, LevelMedium},
		{"unknown-class", LevelLow, LevelLow},
		{"GARBAGE", LevelLow, LevelMedium}, // class lookup is case-insensitive
	}

	for _, tt := range tests {
		got := ComputePriority(tt.class, tt.severity)
		if got != tt.want {
			t.Errorf("ComputePriority(%q, %s) = %s, want %s", tt.class, tt.severity, got, tt.want)
		}
	}
}

func TestComputePriority_NeverBelowBase(t *testing.T) {
	classes := []string{"spills", "garbage", "bin", "trash", "leaf"}
	severities := []Level{LevelLow, LevelMedium, LevelHigh}

	for _, class := range classes {
		base := ComputePriority(class, LevelLow)
		for _, severity := range severities {
			got := ComputePriority(class, severity)
			if levelOrdinals[got] < levelOrdinals[base] {
				t.Errorf("ComputePriority(%q, %s) = %s, below base %s", class, severity, got, base)
			}
		}
	}
}

func TestDepartment(t *testing.T) {
	if got := Department("spills"); got != "spill" {
		t.Errorf("Department(spills) = %q, want spill", got)
	}
	if got := Department("Spills"); got != "spill" {
		t.Errorf("Department(Spills) = %q, want spill", got)
	}
	for _, class := range []string{"garbage", "bin", "trash", "leaf"} {
		if got := Department(class); got != "cleaning" {
			t.Errorf("Department(%q) = %q, want cleaning", class, got)
		}
	}
}

func TestQualifies(t *testing.T) {
	for _, class := range []string{"bin", "garbage", "spills", "trash", "Garbage", "SPILLS"} {
		if !Qualifies(class) {
			t.Errorf("Qualifies(%q) = false, want true", class)
		}
	}
	for _, class := range []string{"leaf", "person", "", "unknown"} {
		if Qualifies(class) {
			t.Errorf("Qualifies(%q) = true, want false", class)
		}
	}
}
