package sourcemock

import (
	"context"

	"propinvest/internal/domain/location"
)

// Locations is a function-backed mock that satisfies location.Repository
// and location.Writer.
type Locations struct {
	ListFn   func(ctx context.Context) ([]location.Location, error)
	UpsertFn func(ctx context.Context, l *location.Location) error
}

func (m *Locations) List(ctx context.Context) ([]location.Location, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Locations) Upsert(ctx context.Context, l *location.Location) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, l)
	}
	return nil
}
