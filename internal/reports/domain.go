package reports

import "time"

// ReportType classifies a community observation.
type ReportType string

const (
	TypePollution       ReportType = "pollution"
	TypeIllegalActivity ReportType = "illegal_activity"
	TypeInfrastructure  ReportType = "infrastructure"
	TypeOther           ReportType = "other"
)

// ReportStatus tracks the investigation lifecycle.
type ReportStatus string

const (
	StatusPending       ReportStatus = "pending"
	StatusInvestigating ReportStatus = "investigating"
	StatusResolved      ReportStatus = "resolved"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusResolved:
		return true
	}
	return false
}

// Report is a community-submitted observation about a water body.
type Report struct {
	ID          string       `json:"id"`
	WaterBodyID string       `json:"waterBodyId"`
	ReporterID  string       `json:"reporterId"`
	ReportType  ReportType   `json:"reportType"`
	Description string       `json:"description"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
