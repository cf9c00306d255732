// Package v1alpha1 contains the public API types served by the impact-planner
// HTTP endpoints.
package v1alpha1

// TaskStatus is the lifecycle status of a submitted report as exposed to clients.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// EnvironmentalImpact groups the environmental metrics of an incident.
type EnvironmentalImpact struct {
	// Co2Emissions is the estimated CO2-equivalent mass in kg.
	Co2Emissions float64 `json:"co2Emissions"`
	// WasteVolume is the estimated waste volume in tonnes.
	WasteVolume float64 `json:"wasteVolume"`
	// RecyclingRate is the local recycling rate estimate as a percentage.
	RecyclingRate float64 `json:"recyclingRate"`
}

// CouncilInfo holds the reporting contact of the council responsible for the
// region the incident was reported in.
type CouncilInfo struct {
	Name            string   `json:"name"`
	ReportingUrl    string   `json:"reportingUrl"`
	ContactNumber   string   `json:"contactNumber"`
	Recommendations []string `json:"recommendations"`
}

// ImpactResult is the full analysis payload returned once a report task has
// completed.
type ImpactResult struct {
	CrimeChange         float64             `json:"crimeChange"`
	DeprivationIndex    float64             `json:"deprivationIndex"`
	HousePriceImpact    float64             `json:"housePriceImpact"`
	EnvironmentalImpact EnvironmentalImpact `json:"environmentalImpact"`
	CouncilInfo         CouncilInfo         `json:"councilInfo"`
	Summary             string              `json:"summary"`
	ImageUrl            string              `json:"imageUrl"`
}

// SubmissionReply is returned by POST /submit.
type SubmissionReply struct {
	TaskId  string     `json:"taskId"`
	Status  TaskStatus `json:"status"`
	Message string     `json:"message"`
}

// TaskStatusReply is returned by GET /result/{taskId}.
type TaskStatusReply struct {
	TaskId string        `json:"taskId"`
	Status TaskStatus    `json:"status"`
	Result *ImpactResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// HealthReply is returned by GET /health.
type HealthReply struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	RegionsLoaded int    `json:"regionsLoaded"`
}

// ErrorReply is the generic error body for request-level failures.
type ErrorReply struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}
