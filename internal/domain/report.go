package domain

import "time"

// ReportStatus status of a diagnostic report
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportPublished ReportStatus = "published"
)

// FindingSeverity how urgent a finding is
type FindingSeverity string

const (
	SeverityAdvisory  FindingSeverity = "advisory"
	SeverityAttention FindingSeverity = "attention"
	SeverityUrgent    FindingSeverity = "urgent"
)

// IsValid returns true for a known severity
func (s FindingSeverity) IsValid() bool {
	return s == SeverityAdvisory || s == SeverityAttention || s == SeverityUrgent
}

// Finding a single item in the report (fault code, observation, recommendation)
type Finding struct {
	Title    string          `json:"title"`
	Code     string          `json:"code,omitempty"`
	Severity FindingSeverity `json:"severity"`
	Detail   string          `json:"detail"`
}

// Report a diagnostic report written by the technician after a visit
type Report struct {
	ID                  int64
	BookingID           *int64
	Title               string
	VehicleRegistration string
	Summary             string
	Findings            []Finding
	Status              ReportStatus
	ShareToken          *string
	PublishedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsPublished returns true when the report is visible by share link
func (r *Report) IsPublished() bool {
	return r.Status == ReportPublished && r.ShareToken != nil
}
