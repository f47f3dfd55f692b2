package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MikaLeppala/uk-rail-departures/internal/weather/geocode"
)

type fakeWeatherSource struct {
	obs Observation
	err error
}

func (f *fakeWeatherSource) Name() string { return "fake" }
func (f *fakeWeatherSource) Fetch(context.Context, float64, float64) (Observation, error) {
	return f.obs, f.err
}

type fakeGeocoder struct {
	name  string
	calls int
}

func (f *fakeGeocoder) PlaceName(context.Context, float64, float64) (string, error) {
	f.calls++
	return f.name, nil
}

func testObservation(now time.Time) Observation {
	times := make([]string, 30)
	temps := make([]float64, 30)
	codes := make([]int, 30)
	start := now.Truncate(time.Hour).Add(-2 * time.Hour)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
		temps[i] = 12
	}
	return Observation{
		Current:     Current{TemperatureC: 14, ApparentC: 13, Code: 2, Condition: ConditionCloudy},
		HourlyTimes: times,
		HourlyTemps: temps,
		HourlyCodes: codes,
	}
}

func newTestPoller(src Source, geo geocode.Reverse) *Poller {
	p := NewPoller(src, geo, 51.5, -0.12, time.Minute, time.Second)
	p.now = func() time.Time { return time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC) }
	return p
}

func TestPollBuildsSnapshot(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	src := &fakeWeatherSource{obs: testObservation(now)}
	geo := &fakeGeocoder{name: "Camden"}
	p := newTestPoller(src, geo)

	p.Poll(context.Background())

	snap := p.Snapshot()
	if snap.PlaceName != "Camden" {
		t.Errorf("expected geocoded place, got %q", snap.PlaceName)
	}
	if snap.Current.TemperatureC != 14 {
		t.Errorf("unexpected current temperature %f", snap.Current.TemperatureC)
	}
	if len(snap.Hours) != ForecastHours {
		t.Errorf("expected %d hourly points, got %d", ForecastHours, len(snap.Hours))
	}
	if snap.Error != "" {
		t.Errorf("unexpected error %q", snap.Error)
	}
}

func TestPollGeocodesOncePerCoordinate(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	src := &fakeWeatherSource{obs: testObservation(now)}
	geo := &fakeGeocoder{name: "Camden"}
	p := newTestPoller(src, geo)

	p.Poll(context.Background())
	p.Poll(context.Background())
	if geo.calls != 1 {
		t.Errorf("expected 1 geocode call for a fixed coordinate, got %d", geo.calls)
	}

	p.SetCoordinate(53.47, -2.23)
	p.Poll(context.Background())
	if geo.calls != 2 {
		t.Errorf("expected re-geocode after coordinate change, got %d calls", geo.calls)
	}
}

func TestPollFailureKeepsLastGoodData(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	src := &fakeWeatherSource{obs: testObservation(now)}
	p := newTestPoller(src, &fakeGeocoder{name: "Camden"})

	p.Poll(context.Background())
	src.err = errors.New("boom")
	p.Poll(context.Background())

	snap := p.Snapshot()
	if snap.Error == "" {
		t.Error("expected error flag after failed poll")
	}
	if snap.Current.TemperatureC != 14 || len(snap.Hours) == 0 {
		t.Errorf("failed poll must keep last good data, got %+v", snap)
	}
}

func TestSetCoordinateDiscardsInFlight(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	p := newTestPoller(nil, nil)
	p.source = &sourceFunc{fn: func() (Observation, error) {
		// Retarget while the request is in flight.
		p.SetCoordinate(53.47, -2.23)
		return testObservation(now), nil
	}}

	p.Poll(context.Background())

	if snap := p.Snapshot(); len(snap.Hours) != 0 {
		t.Errorf("stale response must be discarded, got %d hours", len(snap.Hours))
	}
}

type sourceFunc struct {
	fn func() (Observation, error)
}

func (s *sourceFunc) Name() string { return "func" }
func (s *sourceFunc) Fetch(context.Context, float64, float64) (Observation, error) {
	return s.fn()
}
