package domain

// Level grades a validation finding. Findings are reported, never thrown;
// even Critical findings do not abort an operation.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the display name of the level.
func (lv Level) String() string {
	switch lv {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Finding is one leveled validation result tied to an asset field.
type Finding struct {
	AssetID AssetID
	Field   string
	Level   Level
	Message string
}

// Findings is a report: the empty slice means fully valid.
type Findings []Finding

// MaxLevel returns the highest level present, or LevelInfo-1 semantics are
// avoided by the ok flag: ok is false when the report is empty.
func (f Findings) MaxLevel() (Level, bool) {
	if len(f) == 0 {
		return LevelInfo, false
	}
	max := LevelInfo
	for _, finding := range f {
		if finding.Level > max {
			max = finding.Level
		}
	}
	return max, true
}

// CountAtLeast returns how many findings are at or above the level.
func (f Findings) CountAtLeast(level Level) int {
	count := 0
	for _, finding := range f {
		if finding.Level >= level {
			count++
		}
	}
	return count
}

// Filter returns only the findings at or above the level.
func (f Findings) Filter(level Level) Findings {
	var out Findings
	for _, finding := range f {
		if finding.Level >= level {
			out = append(out, finding)
		}
	}
	return out
}
