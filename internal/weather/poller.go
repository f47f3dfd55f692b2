package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/MikaLeppala/uk-rail-departures/internal/weather/geocode"
)

// ForecastHours is how many hourly points a snapshot carries.
const ForecastHours = 24

// Poller periodically fetches weather for one coordinate and keeps the
// latest snapshot. The place name is resolved once per coordinate, not
// on every poll.
type Poller struct {
	scheduler    *gocron.Scheduler
	source       Source
	geo          geocode.Reverse
	interval     time.Duration
	fetchTimeout time.Duration

	mu    sync.RWMutex
	lat   float64
	lon   float64
	place string
	gen   uint64
	snap  Snapshot

	now func() time.Time
}

// NewPoller creates a poller for the given coordinate. geo may be nil,
// in which case snapshots carry no place name.
func NewPoller(source Source, geo geocode.Reverse, lat, lon float64, interval time.Duration, fetchTimeout time.Duration) *Poller {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Poller{
		scheduler:    gocron.NewScheduler(time.UTC),
		source:       source,
		geo:          geo,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		lat:          lat,
		lon:          lon,
		snap:         Snapshot{Lat: lat, Lon: lon},
		now:          time.Now,
	}
}

// Start schedules the repeating poll, with an immediate first fetch.
func (p *Poller) Start() error {
	_, err := p.scheduler.Every(p.interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.fetchTimeout)
		defer cancel()
		p.Poll(ctx)
	})
	if err != nil {
		return err
	}
	p.scheduler.StartAsync()
	return nil
}

// Stop halts polling and discards in-flight responses.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()
	p.scheduler.Stop()
}

// SetCoordinate retargets the poller. The cached place name is dropped
// so the next poll re-resolves it, and in-flight responses for the old
// coordinate are discarded.
func (p *Poller) SetCoordinate(lat, lon float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lat == p.lat && lon == p.lon {
		return
	}
	p.lat = lat
	p.lon = lon
	p.place = ""
	p.gen++
}

// Snapshot returns a copy of the latest snapshot.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := p.snap
	snap.Hours = make([]HourPoint, len(p.snap.Hours))
	copy(snap.Hours, p.snap.Hours)
	return snap
}

// Poll fetches the forecast once and applies the result.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.RLock()
	gen, lat, lon, place := p.gen, p.lat, p.lon, p.place
	p.mu.RUnlock()

	if place == "" && p.geo != nil {
		name, err := p.geo.PlaceName(ctx, lat, lon)
		if err != nil {
			log.Printf("ERROR: reverse geocode failed for %.4f,%.4f: %v", lat, lon, err)
		} else {
			place = name
		}
	}

	obs, err := p.source.Fetch(ctx, lat, lon)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		// Retargeted or stopped while the request was in flight.
		return
	}
	if place != "" {
		p.place = place
	}

	if err != nil {
		log.Printf("ERROR: weather fetch failed for %.4f,%.4f: %v", lat, lon, err)
		p.snap.Error = "Failed to fetch weather"
		p.snap.PlaceName = p.place
		return
	}

	hours := HourlyWindow(obs.HourlyTimes, obs.HourlyTemps, obs.HourlyCodes, p.now(), ForecastHours)
	p.snap = Snapshot{
		Lat:       lat,
		Lon:       lon,
		PlaceName: p.place,
		Current:   obs.Current,
		Hours:     hours,
		Advice:    Advise(obs.Current, hours),
		UpdatedAt: time.Now().UTC(),
	}
}
