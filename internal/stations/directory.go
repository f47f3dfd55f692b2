package stations

// Station represents a rail station with its metadata.
type Station struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"latitude"`
	Lon  float64 `json:"longitude"`
}

// Directory holds the static set of known stations and answers
// proximity queries against it.
type Directory struct {
	stations []Station
	byCode   map[string]Station
}

// TerminalCodes are the major London terminals used to seed the second
// row of a fresh grid.
var TerminalCodes = []string{"KGX", "EUS", "PAD", "WAT", "VIC", "LST", "STP", "CHX", "LBG", "MYB"}

// NewDirectory creates a directory loaded with the built-in station set.
func NewDirectory() *Directory {
	d := &Directory{
		byCode: make(map[string]Station),
	}
	d.loadDefaultStations()
	return d
}

// All returns every station in the directory, in load order.
func (d *Directory) All() []Station {
	result := make([]Station, len(d.stations))
	copy(result, d.stations)
	return result
}

// Get returns the station for a CRS code.
func (d *Directory) Get(code string) (Station, bool) {
	s, ok := d.byCode[code]
	return s, ok
}

// loadDefaultStations loads the built-in station list. Coordinates are
// approximate station locations, sufficient for proximity ranking.
func (d *Directory) loadDefaultStations() {
	defaults := []Station{
		// London terminals
		{Code: "KGX", Name: "London Kings Cross", Lat: 51.5308, Lon: -0.1238},
		{Code: "EUS", Name: "London Euston", Lat: 51.5282, Lon: -0.1337},
		{Code: "PAD", Name: "London Paddington", Lat: 51.5154, Lon: -0.1755},
		{Code: "WAT", Name: "London Waterloo", Lat: 51.5031, Lon: -0.1132},
		{Code: "VIC", Name: "London Victoria", Lat: 51.4952, Lon: -0.1441},
		{Code: "LST", Name: "London Liverpool Street", Lat: 51.5179, Lon: -0.0817},
		{Code: "STP", Name: "London St Pancras Intl", Lat: 51.5322, Lon: -0.1269},
		{Code: "CHX", Name: "London Charing Cross", Lat: 51.5078, Lon: -0.1247},
		{Code: "LBG", Name: "London Bridge", Lat: 51.5049, Lon: -0.0863},
		{Code: "MYB", Name: "London Marylebone", Lat: 51.5225, Lon: -0.1631},

		// Major regional stations
		{Code: "BHM", Name: "Birmingham New Street", Lat: 52.4778, Lon: -1.8990},
		{Code: "MAN", Name: "Manchester Piccadilly", Lat: 53.4773, Lon: -2.2309},
		{Code: "LDS", Name: "Leeds", Lat: 53.7946, Lon: -1.5470},
		{Code: "LIV", Name: "Liverpool Lime Street", Lat: 53.4074, Lon: -2.9777},
		{Code: "SHF", Name: "Sheffield", Lat: 53.3781, Lon: -1.4621},
		{Code: "NCL", Name: "Newcastle", Lat: 54.9683, Lon: -1.6178},
		{Code: "YRK", Name: "York", Lat: 53.9576, Lon: -1.0933},
		{Code: "NOT", Name: "Nottingham", Lat: 52.9470, Lon: -1.1465},
		{Code: "LEI", Name: "Leicester", Lat: 52.6314, Lon: -1.1253},
		{Code: "DBY", Name: "Derby", Lat: 52.9161, Lon: -1.4633},

		// Scotland and Wales
		{Code: "EDB", Name: "Edinburgh Waverley", Lat: 55.9521, Lon: -3.1898},
		{Code: "GLC", Name: "Glasgow Central", Lat: 55.8589, Lon: -4.2579},
		{Code: "ABD", Name: "Aberdeen", Lat: 57.1437, Lon: -2.0981},
		{Code: "INV", Name: "Inverness", Lat: 57.4800, Lon: -4.2236},
		{Code: "CDF", Name: "Cardiff Central", Lat: 51.4761, Lon: -3.1790},
		{Code: "SWA", Name: "Swansea", Lat: 51.6252, Lon: -3.9412},

		// South and West
		{Code: "RDG", Name: "Reading", Lat: 51.4586, Lon: -0.9714},
		{Code: "OXF", Name: "Oxford", Lat: 51.7537, Lon: -1.2700},
		{Code: "BRI", Name: "Bristol Temple Meads", Lat: 51.4491, Lon: -2.5813},
		{Code: "BTN", Name: "Brighton", Lat: 50.8295, Lon: -0.1411},
		{Code: "SOU", Name: "Southampton Central", Lat: 50.9075, Lon: -1.4140},
		{Code: "EXD", Name: "Exeter St Davids", Lat: 50.7293, Lon: -3.5434},
		{Code: "PLY", Name: "Plymouth", Lat: 50.3778, Lon: -4.1433},

		// North and East
		{Code: "CBG", Name: "Cambridge", Lat: 52.1943, Lon: 0.1372},
		{Code: "NRW", Name: "Norwich", Lat: 52.6271, Lon: 1.3065},
		{Code: "PBO", Name: "Peterborough", Lat: 52.5745, Lon: -0.2503},
		{Code: "DAR", Name: "Darlington", Lat: 54.5203, Lon: -1.5473},
		{Code: "CRE", Name: "Crewe", Lat: 53.0897, Lon: -2.4444},
		{Code: "PRE", Name: "Preston", Lat: 53.7554, Lon: -2.7072},
		{Code: "CAR", Name: "Carlisle", Lat: 54.8907, Lon: -2.9333},
	}

	d.stations = defaults
	for _, s := range defaults {
		d.byCode[s.Code] = s
	}
}
