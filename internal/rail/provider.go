package rail

import "context"

// Source abstracts the upstream departure-board API.
type Source interface {
	Name() string
	Fetch(ctx context.Context, code string, rows int) (BoardData, error)
}
