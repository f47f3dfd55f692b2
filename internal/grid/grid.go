package grid

import (
	"log"
	"strings"
	"sync"
)

// DefaultCode is the station code used for cells created by grid growth
// and for the reset grid after the last cell is removed.
const DefaultCode = "KGX"

// DefaultTheme is the primary color used when none has been persisted.
const DefaultTheme = "#1d4ed8"

// Position identifies one cell of the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Store is the persistence contract for the grid layout and theme.
type Store interface {
	LoadLayout() ([][]string, error)
	SaveLayout([][]string) error
	LoadTheme() (string, error)
	SaveTheme(string) error
}

// Manager owns the station grid and the theme color. It is the only
// writer of the persisted layout. Rows may have different lengths; the
// manager guarantees at least one row and at least one cell per row.
type Manager struct {
	mu    sync.RWMutex
	cells [][]string
	theme string
	store Store
	subs  []func([][]string)
}

// NewManager creates a manager seeded with the given layout. The layout
// is persisted lazily, on the first mutation. The theme is restored
// from the store, falling back to DefaultTheme.
func NewManager(store Store, initial [][]string) *Manager {
	if len(initial) == 0 {
		initial = [][]string{{DefaultCode}}
	}
	theme := DefaultTheme
	if store != nil {
		if c, err := store.LoadTheme(); err == nil {
			theme = c
		}
	}
	return &Manager{
		cells: copyGrid(initial),
		theme: theme,
		store: store,
	}
}

// Subscribe registers a callback invoked with a copy of the grid after
// every mutation. Must be called before the grid starts mutating.
func (m *Manager) Subscribe(fn func([][]string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Snapshot returns a deep copy of the current grid.
func (m *Manager) Snapshot() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyGrid(m.cells)
}

// SetCode replaces the code at row/col. The value is uppercased and
// truncated to three characters. No-op if the position does not exist.
func (m *Manager) SetCode(row, col int, value string) {
	code := normalizeCode(value)
	if code == "" {
		return
	}
	m.mutate(func(cells [][]string) [][]string {
		if row < 0 || row >= len(cells) || col < 0 || col >= len(cells[row]) {
			return nil
		}
		cells[row][col] = code
		return cells
	})
}

// AddColumn appends one default cell to every row.
func (m *Manager) AddColumn() {
	m.mutate(func(cells [][]string) [][]string {
		for i := range cells {
			cells[i] = append(cells[i], DefaultCode)
		}
		return cells
	})
}

// AddRow appends a row of default cells sized to the first row's width,
// or two cells if the grid is empty.
func (m *Manager) AddRow() {
	m.mutate(func(cells [][]string) [][]string {
		width := 2
		if len(cells) > 0 {
			width = len(cells[0])
		}
		row := make([]string, width)
		for i := range row {
			row[i] = DefaultCode
		}
		return append(cells, row)
	})
}

// RemoveCell deletes the cell at row/col. A row left empty is dropped;
// a grid left empty is reset to a single default cell.
func (m *Manager) RemoveCell(row, col int) {
	m.mutate(func(cells [][]string) [][]string {
		if row < 0 || row >= len(cells) || col < 0 || col >= len(cells[row]) {
			return nil
		}
		cells[row] = append(cells[row][:col], cells[row][col+1:]...)
		if len(cells[row]) == 0 {
			cells = append(cells[:row], cells[row+1:]...)
		}
		if len(cells) == 0 {
			cells = [][]string{{DefaultCode}}
		}
		return cells
	})
}

// SwapCells exchanges the codes at two positions. No-op if either
// position is invalid or the positions are equal.
func (m *Manager) SwapCells(a, b Position) {
	if a == b {
		return
	}
	m.mutate(func(cells [][]string) [][]string {
		if !validPos(cells, a) || !validPos(cells, b) {
			return nil
		}
		cells[a.Row][a.Col], cells[b.Row][b.Col] = cells[b.Row][b.Col], cells[a.Row][a.Col]
		return cells
	})
}

// Theme returns the current primary color.
func (m *Manager) Theme() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// SetTheme replaces and persists the primary color.
func (m *Manager) SetTheme(color string) {
	m.mu.Lock()
	m.theme = color
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveTheme(color); err != nil {
			log.Printf("ERROR: failed to persist theme: %v", err)
		}
	}
}

// mutate applies fn to a copy of the grid and, if fn returns a non-nil
// result, swaps it in atomically, persists it and notifies subscribers.
func (m *Manager) mutate(fn func([][]string) [][]string) {
	m.mu.Lock()
	next := fn(copyGrid(m.cells))
	if next == nil {
		m.mu.Unlock()
		return
	}
	m.cells = next
	subs := m.subs
	snapshot := copyGrid(next)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveLayout(snapshot); err != nil {
			log.Printf("ERROR: failed to persist grid layout: %v", err)
		}
	}
	for _, fn := range subs {
		fn(copyGrid(snapshot))
	}
}

func validPos(cells [][]string, p Position) bool {
	return p.Row >= 0 && p.Row < len(cells) && p.Col >= 0 && p.Col < len(cells[p.Row])
}

func normalizeCode(value string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}

func copyGrid(cells [][]string) [][]string {
	result := make([][]string, len(cells))
	for i, row := range cells {
		result[i] = make([]string, len(row))
		copy(result[i], row)
	}
	return result
}
