package source

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"propinvest/internal/domain/investment"
)

// CachedRentEstimator keeps successful estimates in redis for ttl. Redis
// errors are logged and bypassed; failures of the wrapped source are never
// cached.
type CachedRentEstimator struct {
	next investment.RentEstimateSource
	rdb  redis.Cmdable
	ttl  time.Duration
	log  *logrus.Logger
}

func NewCachedRentEstimator(next investment.RentEstimateSource, rdb redis.Cmdable, ttl time.Duration, log *logrus.Logger) *CachedRentEstimator {
	return &CachedRentEstimator{next: next, rdb: rdb, ttl: ttl, log: log}
}

func rentCacheKey(location string) string {
	return "rent:estimate:" + investment.NormalizeLocation(location)
}

func (c *CachedRentEstimator) EstimateRent(ctx context.Context, location string) (float64, error) {
	key := rentCacheKey(location)

	raw, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil && v > 0 {
			return v, nil
		}
		c.log.WithField("key", key).Warn("discarding malformed cached rent")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).WithField("key", key).Warn("rent cache read failed")
	}

	v, err := c.next.EstimateRent(ctx, location)
	if err != nil {
		return 0, err
	}
	if v > 0 {
		if err := c.rdb.Set(ctx, key, strconv.FormatFloat(v, 'f', -1, 64), c.ttl).Err(); err != nil {
			c.log.WithError(err).WithField("key", key).Warn("rent cache write failed")
		}
	}
	return v, nil
}
