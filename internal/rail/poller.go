package rail

import (
	"context"
	"log"
	"sync"
	"time"
)

// Poller owns the departure snapshot for one grid cell. Polls replace
// the station name and service list together; a failed poll keeps the
// last good data and sets the error message. A retired poller discards
// any response still in flight.
type Poller struct {
	source  Source
	code    string
	maxRows int

	mu   sync.RWMutex
	gen  uint64
	snap Snapshot
}

// NewPoller creates a poller for one station code.
func NewPoller(source Source, code string, maxRows int) *Poller {
	return &Poller{
		source:  source,
		code:    code,
		maxRows: maxRows,
		snap:    Snapshot{Code: code},
	}
}

// Code returns the station code this poller was created for.
func (p *Poller) Code() string {
	return p.code
}

// Snapshot returns a copy of the latest snapshot.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := p.snap
	snap.Services = make([]Service, len(p.snap.Services))
	copy(snap.Services, p.snap.Services)
	return snap
}

// Retire marks the poller dead: responses from fetches started before
// the call are dropped instead of applied.
func (p *Poller) Retire() {
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()
}

// Poll fetches the board once and applies the result.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.RLock()
	gen := p.gen
	p.mu.RUnlock()

	data, err := p.source.Fetch(ctx, p.code, p.maxRows)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		// Torn down while the request was in flight.
		return
	}

	if err != nil {
		log.Printf("ERROR: departures fetch failed for %s: %v", p.code, err)
		p.snap.Error = "Failed to fetch departures"
		return
	}

	services := data.Services
	if len(services) > p.maxRows {
		services = services[:p.maxRows]
	}

	p.snap = Snapshot{
		Code:         p.code,
		LocationName: data.LocationName,
		Services:     services,
		UpdatedAt:    time.Now().UTC(),
	}
}
