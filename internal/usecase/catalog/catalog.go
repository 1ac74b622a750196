package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"propinvest/internal/domain/investment"
	"propinvest/internal/domain/location"
)

// Catalog is the in-memory per-location reference table. Later layers
// override earlier ones: built-in defaults, then the YAML file, then the
// database.
type Catalog struct {
	mu       sync.RWMutex
	snapshot map[string]location.Location

	static []location.Location
	repo   location.Repository
	log    *logrus.Logger
}

// New builds the initial snapshot from defaults and static rows. repo may be
// nil; it is only read by Refresh.
func New(static []location.Location, repo location.Repository, log *logrus.Logger) *Catalog {
	c := &Catalog{static: static, repo: repo, log: log}
	c.snapshot = c.base()
	return c
}

func (c *Catalog) base() map[string]location.Location {
	out := make(map[string]location.Location)
	for name, rent := range investment.DefaultFallbackRents() {
		out[name] = location.Location{Name: name, MonthlyRent: rent}
	}
	overlay(out, c.static)
	return out
}

// overlay merges rows into dst field by field: a zero rent or a nil rate
// keeps what an earlier layer set.
func overlay(dst map[string]location.Location, rows []location.Location) {
	for _, l := range rows {
		key := investment.NormalizeLocation(l.Name)
		if key == "" {
			continue
		}
		if prev, ok := dst[key]; ok {
			if l.MonthlyRent <= 0 {
				l.MonthlyRent = prev.MonthlyRent
			}
			if l.AppreciationRate == nil {
				l.AppreciationRate = prev.AppreciationRate
			}
			if l.RentalYield == nil {
				l.RentalYield = prev.RentalYield
			}
		}
		dst[key] = l
	}
}

// Refresh reloads the database layer. On error the previous snapshot stays.
func (c *Catalog) Refresh(ctx context.Context) error {
	next := c.base()
	if c.repo != nil {
		rows, err := c.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("loading locations: %w", err)
		}
		overlay(next, rows)
	}

	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()

	c.log.WithField("locations", len(next)).Info("location catalog refreshed")
	return nil
}

func (c *Catalog) Lookup(name string) (location.Location, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.snapshot[investment.NormalizeLocation(name)]
	return l, ok
}

// Fallback returns a copy of the rent table keyed by normalized name.
// Locations without a positive rent are left out.
func (c *Catalog) Fallback() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]float64, len(c.snapshot))
	for k, l := range c.snapshot {
		if l.MonthlyRent > 0 {
			out[k] = l.MonthlyRent
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}
