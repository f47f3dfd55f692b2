package weather

import "context"

// Observation is one raw fetch from the upstream forecast API: current
// conditions plus the hourly series as parallel arrays.
type Observation struct {
	Current     Current
	HourlyTimes []string
	HourlyTemps []float64
	HourlyCodes []int
}

// Source abstracts the upstream weather forecast API.
type Source interface {
	Name() string
	Fetch(ctx context.Context, lat, lon float64) (Observation, error)
}
