package quality

import "time"

// Status buckets a reading by turbidity.
type Status string

const (
	StatusGood     Status = "Good"
	StatusWarning  Status = "Warning"
	StatusCritical Status = "Critical"
)

// StatusForTurbidity applies the dashboard thresholds: above 25 NTU the lake
// is critical, above 15 NTU it needs attention.
func StatusForTurbidity(ntu float64) Status {
	switch {
	case ntu > 25:
		return StatusCritical
	case ntu > 15:
		return StatusWarning
	default:
		return StatusGood
	}
}

// Reading is one time-indexed set of water-quality parameters.
type Reading struct {
	Date        string  `json:"date"`
	Turbidity   float64 `json:"turbidity"`
	TSS         float64 `json:"tss"`
	Chlorophyll float64 `json:"chlorophyll"`
	NDVI        float64 `json:"ndvi"`
	NDWI        float64 `json:"ndwi"`
}

// Snapshot is the latest reading for one lake plus its bucketed status.
type Snapshot struct {
	WaterBodyID string  `json:"waterBodyId"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Reading     Reading `json:"reading"`
	Status      Status  `json:"status"`
}

// Overview aggregates the fleet for the dashboard landing page.
type Overview struct {
	Lakes              []Snapshot     `json:"lakes"`
	AvgTurbidity       float64        `json:"avgTurbidity"`
	AvgNDVI            float64        `json:"avgNdvi"`
	AvgNDWI            float64        `json:"avgNdwi"`
	CriticalCount      int            `json:"criticalCount"`
	WorstLakes         []Snapshot     `json:"worstLakes"`
	StatusDistribution map[Status]int `json:"statusDistribution"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}
