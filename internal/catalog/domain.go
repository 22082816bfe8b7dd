package catalog

import "time"

// WaterBody is a monitored lake in the registry. Coordinates form a closed
// polygon ring of [longitude, latitude] pairs, in the order the inference
// service expects them.
type WaterBody struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	AreaHectares float64     `json:"area"`
	Coordinates  [][]float64 `json:"coordinates"`
	LastUpdated  time.Time   `json:"lastUpdated"`
}
