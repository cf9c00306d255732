package events

// TaskEvent describes one lifecycle transition of a report task.
type TaskEvent struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	Postcode string `json:"postcode,omitempty"`
	Region   string `json:"region,omitempty"`
	Severity string `json:"severity,omitempty"`
	Error    string `json:"error,omitempty"`
}
