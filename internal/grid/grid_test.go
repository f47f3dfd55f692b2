package grid

import (
	"errors"
	"reflect"
	"testing"
)

// fakeStore records persisted layouts and themes.
type fakeStore struct {
	layouts [][][]string
	theme   string
}

func (f *fakeStore) LoadLayout() ([][]string, error) { return nil, errors.New("empty") }
func (f *fakeStore) SaveLayout(g [][]string) error {
	f.layouts = append(f.layouts, g)
	return nil
}
func (f *fakeStore) LoadTheme() (string, error) { return "", errors.New("empty") }
func (f *fakeStore) SaveTheme(c string) error {
	f.theme = c
	return nil
}

func checkInvariants(t *testing.T, g [][]string) {
	t.Helper()
	if len(g) == 0 {
		t.Fatal("grid must have at least one row")
	}
	for i, row := range g {
		if len(row) == 0 {
			t.Fatalf("row %d is empty", i)
		}
	}
}

func TestSetCode(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX", "EUS"}})

	m.SetCode(0, 1, "pad")
	got := m.Snapshot()
	if got[0][1] != "PAD" {
		t.Errorf("expected uppercased PAD, got %q", got[0][1])
	}

	m.SetCode(0, 0, "WATERLOO")
	if got := m.Snapshot(); got[0][0] != "WAT" {
		t.Errorf("expected truncation to WAT, got %q", got[0][0])
	}
	checkInvariants(t, m.Snapshot())
}

func TestSetCodeOutOfRangeIsNoop(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX"}})
	before := m.Snapshot()

	m.SetCode(1, 0, "PAD")
	m.SetCode(0, 5, "PAD")
	m.SetCode(-1, 0, "PAD")

	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("out-of-range SetCode must not change the grid")
	}
}

func TestAddColumn(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX", "EUS"}, {"PAD"}})

	m.AddColumn()

	got := m.Snapshot()
	want := [][]string{{"KGX", "EUS", DefaultCode}, {"PAD", DefaultCode}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	checkInvariants(t, got)
}

func TestAddRow(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX", "EUS", "PAD"}})

	m.AddRow()

	got := m.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if len(got[1]) != 3 {
		t.Errorf("new row should match first row width, got %d", len(got[1]))
	}
	for _, code := range got[1] {
		if code != DefaultCode {
			t.Errorf("new row cells should be %s, got %s", DefaultCode, code)
		}
	}
}

func TestRemoveCell(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX", "EUS"}, {"PAD"}})

	m.RemoveCell(0, 0)
	got := m.Snapshot()
	if !reflect.DeepEqual(got, [][]string{{"EUS"}, {"PAD"}}) {
		t.Errorf("unexpected grid after removal: %v", got)
	}

	// Removing the row's last cell drops the row.
	m.RemoveCell(1, 0)
	got = m.Snapshot()
	if !reflect.DeepEqual(got, [][]string{{"EUS"}}) {
		t.Errorf("expected empty row to be dropped, got %v", got)
	}
}

func TestRemoveLastCellResetsGrid(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"EUS"}})

	m.RemoveCell(0, 0)

	got := m.Snapshot()
	if !reflect.DeepEqual(got, [][]string{{DefaultCode}}) {
		t.Errorf("expected reset to single default cell, got %v", got)
	}
	checkInvariants(t, got)
}

func TestSwapCells(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX", "EUS"}, {"PAD", "WAT"}})

	m.SwapCells(Position{0, 0}, Position{1, 1})
	got := m.Snapshot()
	if got[0][0] != "WAT" || got[1][1] != "KGX" {
		t.Errorf("swap not applied: %v", got)
	}

	// Invalid and equal positions are no-ops.
	before := m.Snapshot()
	m.SwapCells(Position{0, 0}, Position{5, 5})
	m.SwapCells(Position{1, 0}, Position{1, 0})
	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("invalid swap must not change the grid")
	}
}

func TestMutationsPersist(t *testing.T) {
	fs := &fakeStore{}
	m := NewManager(fs, [][]string{{"KGX"}})

	m.AddRow()
	m.AddColumn()
	m.SetCode(0, 0, "EUS")

	if len(fs.layouts) != 3 {
		t.Fatalf("expected 3 persisted layouts, got %d", len(fs.layouts))
	}
	last := fs.layouts[len(fs.layouts)-1]
	if last[0][0] != "EUS" {
		t.Errorf("persisted layout missing last mutation: %v", last)
	}

	// A no-op mutation does not persist.
	m.SetCode(9, 9, "PAD")
	if len(fs.layouts) != 3 {
		t.Errorf("no-op mutation should not persist, got %d writes", len(fs.layouts))
	}
}

func TestSubscribe(t *testing.T) {
	m := NewManager(&fakeStore{}, [][]string{{"KGX"}})

	var seen [][]string
	m.Subscribe(func(g [][]string) { seen = g })

	m.AddColumn()
	if !reflect.DeepEqual(seen, [][]string{{"KGX", DefaultCode}}) {
		t.Errorf("subscriber saw %v", seen)
	}
}

func TestTheme(t *testing.T) {
	fs := &fakeStore{}
	m := NewManager(fs, [][]string{{"KGX"}})

	if m.Theme() != DefaultTheme {
		t.Errorf("expected default theme, got %q", m.Theme())
	}

	m.SetTheme("#ff0000")
	if m.Theme() != "#ff0000" {
		t.Errorf("theme not applied: %q", m.Theme())
	}
	if fs.theme != "#ff0000" {
		t.Errorf("theme not persisted: %q", fs.theme)
	}
}
