package model

import "time"

// ReportOutcome is the tagged result of a report synthesis: either a
// generated report with its timestamp, or an error description. It is
// never partially populated.
type ReportOutcome struct {
	Success     bool   `json:"success"`
	Report      string `json:"report,omitempty"`
	Error       string `json:"error,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// ReportSuccess builds a successful outcome.
func ReportSuccess(report string, generatedAt time.Time) ReportOutcome {
	return ReportOutcome{
		Success:     true,
		Report:      report,
		GeneratedAt: generatedAt.Format(time.RFC3339),
	}
}

// ReportFailure builds a failed outcome from an error.
func ReportFailure(err error) ReportOutcome {
	return ReportOutcome{Success: false, Error: err.Error()}
}
