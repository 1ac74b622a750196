package location

import "context"

type Repository interface {
	List(ctx context.Context) ([]Location, error)
}

// Writer stores reference rows, replacing any row with the same name.
type Writer interface {
	Upsert(ctx context.Context, l *Location) error
}
