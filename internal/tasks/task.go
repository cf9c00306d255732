// Package tasks holds the domain model for submitted fly-tipping reports:
// the task lifecycle, the closed classification sets, and the in-memory task
// store. A task is created at submission, processed by exactly one pipeline
// goroutine, and never deleted for the lifetime of the process.
package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the task lifecycle: pending → processing → {completed | failed}.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal returns true if the task has reached a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ImpactMetrics is the numeric impact estimate derived from the region
// coefficients and the severity bucket. Immutable once computed.
type ImpactMetrics struct {
	Co2EmissionsKg      float64
	WasteVolumeTonnes   float64
	RecyclingRatePct    float64
	CrimeChangePct      float64
	DeprivationIndex    float64
	HousePriceImpactPct float64
}

// CouncilContact is the reporting contact for the council responsible for a
// region. Confidence is "low" when the contact was synthesized rather than
// looked up.
type CouncilContact struct {
	Name            string
	ReportingURL    string
	ContactNumber   string
	Confidence      string
	Recommendations []string
}

// Result is the assembled analysis payload for one completed report.
type Result struct {
	Region   string
	Severity SeverityBucket
	Material MaterialLabel
	Metrics  ImpactMetrics
	Council  CouncilContact
	Summary  string
	ImageURL string
}

// Metadata captures completion facts alongside the result.
type Metadata struct {
	Region      string
	Severity    SeverityBucket
	ProcessedAt time.Time
}

// Task is the unit of work representing one submitted report.
// Exactly one of Result/Error is populated once the status is terminal.
type Task struct {
	ID        uuid.UUID
	Status    Status
	CreatedAt time.Time
	Postcode  string
	Result    *Result
	Error     string
	Metadata  *Metadata
}
