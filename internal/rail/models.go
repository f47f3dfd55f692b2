package rail

import "time"

// Service is one departing train on a station board.
type Service struct {
	// ID is the upstream service identifier, stable within a day and
	// used as the list key by consumers.
	ID string `json:"serviceId"`

	// Scheduled and Estimated are display times as returned upstream.
	// Estimated is either a clock time or the literal "On time".
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`

	Platform     string   `json:"platform,omitempty"`
	Destinations []string `json:"destinations"`
	Operator     string   `json:"operator"`
}

// Delayed reports whether the estimate diverges from the schedule.
// Consumers use this to emphasise revised times.
func (s Service) Delayed() bool {
	return s.Estimated != "On time" && s.Estimated != s.Scheduled
}

// BoardData is one successful fetch of a station's departure board.
type BoardData struct {
	LocationName string    `json:"locationName"`
	Services     []Service `json:"services"`
}

// Snapshot is the latest known state for one grid cell. A failed poll
// sets Error without clearing the previously fetched data.
type Snapshot struct {
	Code         string    `json:"code"`
	LocationName string    `json:"locationName"`
	Services     []Service `json:"services"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
	Error        string    `json:"error,omitempty"`
}
