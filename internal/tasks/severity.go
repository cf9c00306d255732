package tasks

import (
	"strings"

	"github.com/thoas/go-funk"
)

// SeverityBucket classifies the volume of dumped waste. The multiplier table is
// a fixed domain constant shared by every impact formula, not tunable input.
type SeverityBucket string

const (
	SeveritySmall       SeverityBucket = "small"
	SeverityMedium      SeverityBucket = "medium"
	SeverityLarge       SeverityBucket = "large"
	SeverityVehicleLoad SeverityBucket = "vehicle-load"
)

// DefaultSeverity is substituted when the classifier fails or returns
// something outside the closed set.
const DefaultSeverity = SeverityMedium

// severityAliases maps classifier vocabulary variants onto the closed set.
var severityAliases = map[string]SeverityBucket{
	"small_bag":  SeveritySmall,
	"medium_bag": SeverityMedium,
	"large_bag":  SeverityLarge,
	"van":        SeverityVehicleLoad,
	"vehicle":    SeverityVehicleLoad,
	"truck":      SeverityVehicleLoad,
}

// AllSeverities returns the closed severity set, smallest first.
func AllSeverities() []SeverityBucket {
	return []SeverityBucket{SeveritySmall, SeverityMedium, SeverityLarge, SeverityVehicleLoad}
}

func (b SeverityBucket) String() string { return string(b) }

// Multiplier returns the fixed numeric multiplier applied by the impact
// calculator for this bucket.
func (b SeverityBucket) Multiplier() float64 {
	switch b {
	case SeveritySmall:
		return 1.0
	case SeverityMedium:
		return 2.5
	case SeverityLarge:
		return 5.0
	case SeverityVehicleLoad:
		return 15.0
	}
	return DefaultSeverity.Multiplier()
}

// IsValid reports whether b is a member of the closed severity set.
func (b SeverityBucket) IsValid() bool {
	return funk.Contains(AllSeverities(), b)
}

// ParseSeverity recovers a severity bucket from raw classifier output. Exact
// matches win; otherwise the answer is scanned for a known bucket name or
// alias. The boolean reports whether anything usable was found.
func ParseSeverity(raw string) (SeverityBucket, bool) {
	answer := strings.ToLower(strings.TrimSpace(raw))
	if answer == "" {
		return DefaultSeverity, false
	}

	if b := SeverityBucket(answer); b.IsValid() {
		return b, true
	}
	if b, ok := severityAliases[answer]; ok {
		return b, true
	}

	// Free-text answers: prefer the most specific mention. "vehicle-load"
	// contains no other bucket name so scanning largest-first is safe.
	for i := len(AllSeverities()) - 1; i >= 0; i-- {
		b := AllSeverities()[i]
		if strings.Contains(answer, string(b)) {
			return b, true
		}
	}
	for alias, b := range severityAliases {
		if strings.Contains(answer, alias) {
			return b, true
		}
	}

	return DefaultSeverity, false
}
