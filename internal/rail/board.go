package rail

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Board maintains one poller per grid cell, scheduled at a fixed
// interval with an immediate first fetch. Reconcile keeps the poller
// set in step with the grid: a removed cell or changed code tears the
// old poller down and, for a changed code, starts a fresh one.
type Board struct {
	scheduler    *gocron.Scheduler
	source       Source
	interval     time.Duration
	maxRows      int
	fetchTimeout time.Duration

	mu     sync.Mutex
	cells  map[string]*Poller
	layout [][]string
}

// NewBoard creates a board polling the given source.
func NewBoard(source Source, interval time.Duration, maxRows int, fetchTimeout time.Duration) *Board {
	if maxRows <= 0 {
		maxRows = 8
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Board{
		scheduler:    gocron.NewScheduler(time.UTC),
		source:       source,
		interval:     interval,
		maxRows:      maxRows,
		fetchTimeout: fetchTimeout,
		cells:        make(map[string]*Poller),
	}
}

// Start begins running scheduled polls.
func (b *Board) Start() {
	b.scheduler.StartAsync()
}

// Stop tears down all pollers and the scheduler.
func (b *Board) Stop() {
	b.mu.Lock()
	for _, p := range b.cells {
		p.Retire()
	}
	b.mu.Unlock()
	b.scheduler.Stop()
}

// Reconcile aligns the poller set with the given grid layout.
func (b *Board) Reconcile(layout [][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	desired := make(map[string]string)
	for r, row := range layout {
		for c, code := range row {
			desired[cellTag(r, c)] = code
		}
	}

	// Tear down pollers for removed cells and changed codes.
	for tag, p := range b.cells {
		if code, ok := desired[tag]; ok && code == p.Code() {
			continue
		}
		p.Retire()
		if err := b.scheduler.RemoveByTag(tag); err != nil {
			log.Printf("DEBUG: remove job %s: %v", tag, err)
		}
		delete(b.cells, tag)
	}

	// Start pollers for new cells.
	for tag, code := range desired {
		if _, ok := b.cells[tag]; ok {
			continue
		}
		p := NewPoller(b.source, code, b.maxRows)
		b.cells[tag] = p

		_, err := b.scheduler.Every(b.interval).Tag(tag).StartImmediately().Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), b.fetchTimeout)
			defer cancel()
			p.Poll(ctx)
		})
		if err != nil {
			log.Printf("ERROR: failed to schedule poller for %s: %v", code, err)
		}
	}

	b.layout = make([][]string, len(layout))
	for i, row := range layout {
		b.layout[i] = make([]string, len(row))
		copy(b.layout[i], row)
	}
}

// Snapshots returns the latest snapshot per cell, shaped like the grid.
func (b *Board) Snapshots() [][]Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([][]Snapshot, len(b.layout))
	for r, row := range b.layout {
		result[r] = make([]Snapshot, len(row))
		for c, code := range row {
			if p, ok := b.cells[cellTag(r, c)]; ok {
				result[r][c] = p.Snapshot()
			} else {
				result[r][c] = Snapshot{Code: code}
			}
		}
	}
	return result
}

func cellTag(row, col int) string {
	return fmt.Sprintf("cell-%d-%d", row, col)
}
