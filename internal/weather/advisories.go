package weather

// Advisories are display suggestions derived from the current
// conditions and the next few forecast hours. Pure functions of their
// inputs; no I/O.
type Advisories struct {
	Clothing     string `json:"clothing"`
	Outdoor      string `json:"outdoor"`
	RainExpected bool   `json:"rainExpected"`
}

// adviceWindowHours is how far ahead the advisories look.
const adviceWindowHours = 6

// Advise derives advisories from the current observation and the
// extracted hourly window. Only the first adviceWindowHours entries of
// the window are considered.
func Advise(cur Current, window []HourPoint) Advisories {
	if len(window) > adviceWindowHours {
		window = window[:adviceWindowHours]
	}

	rain := expectRain(cur, window)
	return Advisories{
		Clothing:     clothingFor(cur, window, rain),
		Outdoor:      outdoorFor(cur, rain),
		RainExpected: rain,
	}
}

func expectRain(cur Current, window []HourPoint) bool {
	if cur.PrecipMm > 0 {
		return true
	}
	if cur.Condition == ConditionRain || cur.Condition == ConditionStorm {
		return true
	}
	for _, h := range window {
		if h.Condition == ConditionRain || h.Condition == ConditionStorm {
			return true
		}
	}
	return false
}

func clothingFor(cur Current, window []HourPoint, rain bool) string {
	// Dress for the coldest point of the window, not just right now.
	low := cur.ApparentC
	for _, h := range window {
		if h.TemperatureC < low {
			low = h.TemperatureC
		}
	}

	var base string
	switch {
	case low <= 0:
		base = "Heavy coat, hat and gloves"
	case low <= 8:
		base = "Warm coat"
	case low <= 14:
		base = "Jacket"
	case low <= 20:
		base = "Light jacket"
	default:
		base = "T-shirt weather"
	}

	if rain {
		return base + ", and take an umbrella"
	}
	return base
}

func outdoorFor(cur Current, rain bool) string {
	switch {
	case cur.Condition == ConditionStorm:
		return "Storms around, stay indoors"
	case cur.Condition == ConditionSnow:
		return "Snowy, wrap up if heading out"
	case rain:
		return "Rain expected, plan for indoors"
	case cur.TemperatureC >= 12 && cur.TemperatureC <= 24:
		return "Good conditions for being outdoors"
	default:
		return "Fine for outdoor plans"
	}
}
