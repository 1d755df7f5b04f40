package attendance

import "time"

// Employee processing status
const (
	StatusGenerated = "generated"
	StatusPrinted   = "printed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped" // Not reached because an earlier employee failed
)

// EmployeeResult is the outcome of processing one roster entry
type EmployeeResult struct {
	Name      string  `json:"name"`
	Directory string  `json:"directory"`
	Source    string  `json:"source,omitempty"`
	PDF       string  `json:"pdf,omitempty"`
	PDFSize   int64   `json:"pdf_size,omitempty"`
	Hours     float64 `json:"hours"`
	HideHours bool    `json:"hide_hours,omitempty"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

// RunResult describes a whole generation run
type RunResult struct {
	Year       int              `json:"year"`
	Month      time.Month       `json:"month"`
	MonthName  string           `json:"month_name"`
	TotalHours int              `json:"total_hours"`
	Holidays   []string         `json:"holidays"` // "2006-01-02 summary" for the target month
	Print      bool             `json:"print"`
	StartedAt  string           `json:"started_at"`
	FinishedAt string           `json:"finished_at"`
	Employees  []EmployeeResult `json:"employees"`
}

// Succeeded reports whether every employee was processed
func (r *RunResult) Succeeded() bool {
	for _, e := range r.Employees {
		if e.Status == StatusFailed || e.Status == StatusSkipped {
			return false
		}
	}
	return true
}

// Count returns how many employees ended with status
func (r *RunResult) Count(status string) int {
	n := 0
	for _, e := range r.Employees {
		if e.Status == status {
			n++
		}
	}
	return n
}
