package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	httpadp "propinvest/internal/adapter/http"
	mw "propinvest/internal/adapter/middleware"
	"propinvest/internal/cli"
	"propinvest/internal/config"
	"propinvest/internal/infrastructure/logging"
	"propinvest/internal/infrastructure/scheduler"
	"propinvest/internal/usecase/analysis"
	"propinvest/internal/usecase/catalog"
	"propinvest/pkg/money"
)

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	return config.Load(), nil
}

func runServe(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logging.New(cfg.LogLevel, os.Stdout)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.New(log, 30*time.Second)
	if cfg.CatalogRefresh != "" {
		if err := sched.Every(cfg.CatalogRefresh, "catalog-refresh", a.catalog.Refresh); err != nil {
			return fmt.Errorf("invalid CATALOG_REFRESH %q: %w", cfg.CatalogRefresh, err)
		}
	}
	sched.Start()
	defer sched.Stop()
	log.WithField("jobs", sched.Len()).Debug("scheduler started")

	var responseCache echo.MiddlewareFunc
	if a.rdb != nil {
		responseCache = mw.ResponseCache(a.rdb, cfg.ResponseCacheTTL(), log)
	}
	e, err := httpadp.NewEcho(httpadp.Deps{
		Health:        httpadp.NewHandler(a.catalog),
		Analysis:      httpadp.NewAnalysisHandler(a.usecase),
		ResponseCache: responseCache,
	})
	if err != nil {
		return err
	}

	addr := net.JoinHostPort("", cfg.AppPort)
	errc := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":      addr,
			"locations": a.catalog.Len(),
			"cache":     a.rdb != nil,
		}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// runSeed upserts the rows of file, or of LOCATIONS_FILE when file is empty,
// into the reference database.
func runSeed(ctx context.Context, cfg *config.Config, file string, log *logrus.Logger) (int, error) {
	if cfg.DBDriver == "" {
		return 0, errors.New("seed needs a reference database: set DB_DRIVER")
	}
	if file == "" {
		file = cfg.LocationsFile
	}
	if file == "" {
		return 0, errors.New("nothing to seed: pass --file or set LOCATIONS_FILE")
	}
	rows, err := config.LoadLocations(file)
	if err != nil {
		return 0, err
	}

	repo, closeDB, err := openReference(cfg, log)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := closeDB(); err != nil {
			log.WithError(err).Warn("close failed")
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	n, err := catalog.Seed(ctx, repo, rows, log)
	if err != nil {
		return n, err
	}
	log.WithFields(logrus.Fields{"file": file, "rows": n, "driver": cfg.DBDriver}).Info("reference database seeded")
	return n, nil
}

type analyzeFlags struct {
	Location     string
	PropertyType string
	Price        string
	Rent         string
	Years        int
	Loan         string
	Rate         float64
	Tenure       int
	// RateSet and TenureSet record whether the flags were given; unset ones
	// fall back to the configured loan terms.
	RateSet   bool
	TenureSet bool
}

// input converts flag values.
func (f analyzeFlags) input() (analysis.Input, error) {
	in := analysis.Input{Location: f.Location, PropertyType: f.PropertyType, HoldingYears: f.Years}
	if f.Price == "" {
		return in, errors.New("--price is required with --location")
	}
	var err error
	if in.PurchasePrice, err = money.ParseAmount(f.Price); err != nil {
		return in, fmt.Errorf("--price: %w", err)
	}
	if f.Rent != "" {
		rent, err := money.ParseAmount(f.Rent)
		if err != nil {
			return in, fmt.Errorf("--rent: %w", err)
		}
		in.ExpectedRent = &rent
	}
	if f.Loan != "" {
		if in.LoanAmount, err = money.ParseAmount(f.Loan); err != nil {
			return in, fmt.Errorf("--loan: %w", err)
		}
	}
	if f.RateSet {
		rate := f.Rate
		in.LoanInterestRate = &rate
	}
	if f.TenureSet {
		tenure := f.Tenure
		in.LoanTenureYears = &tenure
	}
	return in, nil
}

func runAnalyze(ctx context.Context, cfg *config.Config, f analyzeFlags, stdin io.Reader, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// keep the terminal readable unless a level was asked for
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	log := logging.New(level, os.Stderr)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return analyze(ctx, a.usecase, f, stdin, stdout)
}

// analyze runs one analysis from flags, or interactively when no location
// flag was given.
func analyze(ctx context.Context, uc *analysis.Usecase, f analyzeFlags, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var in analysis.Input
	var err error
	if f.Location != "" {
		in, err = f.input()
	} else {
		in, err = cli.Ask(ctx, cli.NewPrompter(stdin, stdout), uc)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Fetching market data for %s...\n", in.Location)
	report, err := uc.Analyze(ctx, in)
	if err != nil {
		return err
	}
	cli.PrintReport(stdout, report)
	return nil
}
