package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"propinvest/internal/domain/location"
)

// Seed upserts rows into w in order and returns how many were written. It
// stops at the first failure; rows already written stay written.
func Seed(ctx context.Context, w location.Writer, rows []location.Location, log *logrus.Logger) (int, error) {
	if len(rows) == 0 {
		return 0, location.ErrNoRows
	}
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		l := rows[i]
		if err := w.Upsert(ctx, &l); err != nil {
			return i, fmt.Errorf("seeding %q: %w", l.Name, err)
		}
		log.WithFields(logrus.Fields{"location": l.Name, "id": l.ID}).Debug("catalog: seeded")
	}
	return len(rows), nil
}
