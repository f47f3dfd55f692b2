package stations

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// Nearest returns up to n stations sorted ascending by distance from the
// given point. Ties keep directory load order.
func (d *Directory) Nearest(lat, lon float64, n int) []Station {
	return nearestOf(d.stations, lat, lon, n)
}

// NearestTerminals returns up to n of the major London terminals sorted
// ascending by distance from the given point.
func (d *Directory) NearestTerminals(lat, lon float64, n int) []Station {
	terminals := make([]Station, 0, len(TerminalCodes))
	for _, code := range TerminalCodes {
		if s, ok := d.byCode[code]; ok {
			terminals = append(terminals, s)
		}
	}
	return nearestOf(terminals, lat, lon, n)
}

func nearestOf(candidates []Station, lat, lon float64, n int) []Station {
	type ranked struct {
		station Station
		dist    float64
	}

	rankings := make([]ranked, 0, len(candidates))
	for _, s := range candidates {
		rankings = append(rankings, ranked{station: s, dist: Haversine(lat, lon, s.Lat, s.Lon)})
	}

	// Stable sort so equidistant stations keep input order.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].dist < rankings[j].dist
	})

	if n > len(rankings) {
		n = len(rankings)
	}
	result := make([]Station, 0, n)
	for _, r := range rankings[:n] {
		result = append(result, r.station)
	}
	return result
}
