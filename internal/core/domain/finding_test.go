package domain

import "testing"

func TestFindingsMaxLevel(t *testing.T) {
	var empty Findings
	if _, ok := empty.MaxLevel(); ok {
		t.Error("empty report must have no max level")
	}

	report := Findings{
		{Level: LevelInfo},
		{Level: LevelError},
		{Level: LevelWarning},
	}
	max, ok := report.MaxLevel()
	if !ok || max != LevelError {
		t.Errorf("max = %v ok=%v, want LevelError true", max, ok)
	}
}

func TestFindingsCountAtLeastAndFilter(t *testing.T) {
	report := Findings{
		{Level: LevelInfo},
		{Level: LevelWarning},
		{Level: LevelError},
		{Level: LevelCritical},
	}

	if got := report.CountAtLeast(LevelWarning); got != 3 {
		t.Errorf("CountAtLeast(Warning) = %d, want 3", got)
	}
	if got := report.Filter(LevelError); len(got) != 2 {
		t.Errorf("Filter(Error) kept %d, want 2", len(got))
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelInfo, "INFO"},
		{LevelWarning, "WARNING"},
		{LevelError, "ERROR"},
		{LevelCritical, "CRITICAL"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
