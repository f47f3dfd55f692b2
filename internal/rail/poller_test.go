package rail

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	fetch func(ctx context.Context, code string, rows int) (BoardData, error)
}

func (f *fakeSource) Name() string { return "fake" }
func (f *fakeSource) Fetch(ctx context.Context, code string, rows int) (BoardData, error) {
	return f.fetch(ctx, code, rows)
}

func sampleBoard(name string, ids ...string) BoardData {
	data := BoardData{LocationName: name}
	for _, id := range ids {
		data.Services = append(data.Services, Service{
			ID:           id,
			Scheduled:    "12:04",
			Estimated:    "On time",
			Destinations: []string{"Leeds"},
			Operator:     "LNER",
		})
	}
	return data
}

func TestPollSuccessReplacesSnapshot(t *testing.T) {
	src := &fakeSource{fetch: func(context.Context, string, int) (BoardData, error) {
		return sampleBoard("London Kings Cross", "a", "b"), nil
	}}
	p := NewPoller(src, "KGX", 8)

	p.Poll(context.Background())

	snap := p.Snapshot()
	if snap.LocationName != "London Kings Cross" {
		t.Errorf("unexpected location %q", snap.LocationName)
	}
	if len(snap.Services) != 2 {
		t.Errorf("expected 2 services, got %d", len(snap.Services))
	}
	if snap.Error != "" {
		t.Errorf("unexpected error flag %q", snap.Error)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestPollFailureKeepsLastGoodData(t *testing.T) {
	fail := false
	src := &fakeSource{fetch: func(context.Context, string, int) (BoardData, error) {
		if fail {
			return BoardData{}, errors.New("boom")
		}
		return sampleBoard("London Euston", "a"), nil
	}}
	p := NewPoller(src, "EUS", 8)

	p.Poll(context.Background())
	fail = true
	p.Poll(context.Background())

	snap := p.Snapshot()
	if snap.Error == "" {
		t.Error("expected sticky error after failed poll")
	}
	if len(snap.Services) != 1 || snap.LocationName != "London Euston" {
		t.Errorf("failed poll must keep last good data, got %+v", snap)
	}

	// A later success clears the error.
	fail = false
	p.Poll(context.Background())
	if snap := p.Snapshot(); snap.Error != "" {
		t.Errorf("expected error cleared after success, got %q", snap.Error)
	}
}

func TestPollCapsServices(t *testing.T) {
	src := &fakeSource{fetch: func(context.Context, string, int) (BoardData, error) {
		return sampleBoard("X", "a", "b", "c", "d"), nil
	}}
	p := NewPoller(src, "KGX", 2)

	p.Poll(context.Background())

	if got := len(p.Snapshot().Services); got != 2 {
		t.Errorf("expected services capped at 2, got %d", got)
	}
}

func TestRetireDiscardsInFlightResponse(t *testing.T) {
	p := NewPoller(nil, "KGX", 8)
	p.source = &fakeSource{fetch: func(context.Context, string, int) (BoardData, error) {
		// Simulate teardown while the request is in flight.
		p.Retire()
		return sampleBoard("Stale", "a"), nil
	}}

	p.Poll(context.Background())

	snap := p.Snapshot()
	if snap.LocationName == "Stale" || len(snap.Services) != 0 {
		t.Errorf("stale response must be discarded, got %+v", snap)
	}
}

func TestServiceDelayed(t *testing.T) {
	cases := []struct {
		std, etd string
		want     bool
	}{
		{"12:04", "On time", false},
		{"12:04", "12:04", false},
		{"12:04", "12:11", true},
		{"12:04", "Cancelled", true},
	}
	for _, tc := range cases {
		s := Service{Scheduled: tc.std, Estimated: tc.etd}
		if s.Delayed() != tc.want {
			t.Errorf("Delayed(%q,%q) = %v, want %v", tc.std, tc.etd, s.Delayed(), tc.want)
		}
	}
}
