package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"propinvest/internal/adapter/repository/mysql"
	"propinvest/internal/adapter/source"
	"propinvest/internal/config"
	"propinvest/internal/domain/investment"
	"propinvest/internal/domain/location"
	"propinvest/internal/infrastructure/cache"
	"propinvest/internal/infrastructure/db"
	"propinvest/internal/usecase/analysis"
	"propinvest/internal/usecase/catalog"
)

// app holds everything both sub-commands share.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	catalog *catalog.Catalog
	usecase *analysis.Usecase
	// rdb is nil when REDIS_ADDR is unset or unreachable.
	rdb     redis.Cmdable
	closers []func() error
}

func newApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	var static []location.Location
	if cfg.LocationsFile != "" {
		rows, err := config.LoadLocations(cfg.LocationsFile)
		if err != nil {
			return nil, err
		}
		static = rows
	}

	var repo location.Repository
	if cfg.DBDriver != "" {
		r, closeDB, err := openReference(cfg, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeDB)
		repo = r
	}

	a.catalog = catalog.New(static, repo, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.catalog.Refresh(ctx); err != nil {
		log.WithError(err).Warn("catalog: initial refresh failed, serving built-in locations")
	}

	rdb, err := cache.OpenRedis(cfg)
	switch {
	case errors.Is(err, cache.ErrDisabled):
	case err != nil:
		log.WithError(err).Warn("redis unreachable, caching disabled")
	default:
		a.rdb = rdb
		a.closers = append(a.closers, rdb.Close)
	}

	opts := analysis.Options{
		DefaultRent:         cfg.DefaultRent,
		LoanInterestRate:    cfg.LoanInterestRate,
		LoanTenureYears:     cfg.LoanTenureYears,
		CollaboratorTimeout: cfg.CollaboratorTimeout(),
	}
	a.usecase = analysis.NewUsecase(a.rentSource(), a.marketSource(), a.riskSource(), a.catalog, opts, log)
	return a, nil
}

// openReference opens and migrates the reference database.
func openReference(cfg *config.Config, log *logrus.Logger) (*mysql.LocationRepository, func() error, error) {
	gdb, err := db.OpenGorm(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening reference database: %w", err)
	}
	closeDB := func() error { return nil }
	if sqlDB, err := gdb.DB(); err == nil {
		closeDB = sqlDB.Close
	}
	if err := db.Migrate(gdb); err != nil {
		_ = closeDB()
		return nil, nil, fmt.Errorf("migrating reference database: %w", err)
	}
	return mysql.NewLocationRepository(gdb), closeDB, nil
}

func (a *app) rentSource() investment.RentEstimateSource {
	var src investment.RentEstimateSource
	switch a.cfg.RentEstimateMode {
	case config.RentEstimateHTTP:
		src = source.NewHTTPRentEstimator(a.cfg.RentAPIURL, a.cfg.CollaboratorTimeout(), a.log)
	case config.RentEstimateSimulated:
		src = source.NewSimulatedRentEstimator()
	default:
		return nil
	}
	if a.rdb != nil {
		return source.NewCachedRentEstimator(src, a.rdb, a.cfg.RentCacheTTL(), a.log)
	}
	return src
}

func (a *app) marketSource() investment.MarketDataSource {
	switch a.cfg.MarketDataMode {
	case config.MarketRandom:
		return source.NewRandomMarketData()
	case config.MarketCatalog:
		return source.NewCatalogMarketData(a.catalog, source.NewFixedMarketData())
	default:
		return source.NewFixedMarketData()
	}
}

func (a *app) riskSource() investment.RiskAssessor {
	if a.cfg.RiskMode == config.RiskStatic {
		return source.StaticRiskAssessor{Level: investment.RiskMedium, Reason: "static assessment"}
	}
	return source.NewRandomRiskAssessor()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
	a.closers = nil
}
