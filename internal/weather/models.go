package weather

import "time"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionMist    Condition = "mist"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
)

// Current is the present observation at the tracked coordinate.
type Current struct {
	Time         string    `json:"time"`
	TemperatureC float64   `json:"temperatureC"`
	ApparentC    float64   `json:"apparentC"`
	PrecipMm     float64   `json:"precipMm"`
	WindSpeedKmh float64   `json:"windSpeedKmh"`
	WindDirDeg   float64   `json:"windDirectionDeg"`
	Code         int       `json:"weatherCode"`
	Condition    Condition `json:"condition"`
}

// HourPoint is one hourly forecast entry.
type HourPoint struct {
	Time         string    `json:"time"`
	TemperatureC float64   `json:"temperatureC"`
	Code         int       `json:"weatherCode"`
	Condition    Condition `json:"condition"`
}

// Snapshot is the latest weather view for one coordinate. A failed poll
// sets Error without clearing previously fetched data.
type Snapshot struct {
	Lat       float64     `json:"latitude"`
	Lon       float64     `json:"longitude"`
	PlaceName string      `json:"placeName,omitempty"`
	Current   Current     `json:"current"`
	Hours     []HourPoint `json:"hours"`
	Advice    Advisories  `json:"advice"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// ConditionForCode maps an Open-Meteo style weather code to a
// normalized condition.
func ConditionForCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}
