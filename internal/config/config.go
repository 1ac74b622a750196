package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	RentEstimateOff       = "off"
	RentEstimateHTTP      = "http"
	RentEstimateSimulated = "simulated"

	MarketFixed   = "fixed"
	MarketRandom  = "random"
	MarketCatalog = "catalog"

	RiskRandom = "random"
	RiskStatic = "static"
)

type Config struct {
	AppPort  string
	LogLevel string

	// DBDriver is empty when no reference-data database is configured.
	DBDriver   string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string
	SQLitePath string

	// RedisAddr is empty when caching is disabled.
	RedisAddr string
	RedisDB   int

	ResponseCacheTTLSecs int
	RentCacheTTLSecs     int

	RentEstimateMode      string
	RentAPIURL            string
	CollaboratorTimeoutMS int
	MarketDataMode        string
	RiskMode              string

	LocationsFile  string
	CatalogRefresh string

	DefaultRent      float64
	LoanInterestRate float64
	LoanTenureYears  int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getfloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

// LoadDotEnv copies KEY=VALUE pairs from path into the environment. Variables
// already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func Load() *Config {
	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:   os.Getenv("DB_DRIVER"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "propinvest"),
		MySQLUser:  getenv("MYSQL_USER", "propinvest"),
		MySQLPass:  getenv("MYSQL_PASS", "propinvest"),
		SQLitePath: getenv("SQLITE_PATH", "propinvest.db"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getint("REDIS_DB", 0),

		ResponseCacheTTLSecs: getint("RESPONSE_CACHE_TTL_SECONDS", 300),
		RentCacheTTLSecs:     getint("RENT_CACHE_TTL_SECONDS", 3600),

		RentEstimateMode:      getenv("RENT_ESTIMATE_MODE", RentEstimateOff),
		RentAPIURL:            getenv("RENT_API_URL", "https://www.nobroker.in/api/v1/multilocation/search"),
		CollaboratorTimeoutMS: getint("COLLABORATOR_TIMEOUT_MS", 3000),
		MarketDataMode:        getenv("MARKET_DATA_MODE", MarketFixed),
		RiskMode:              getenv("RISK_MODE", RiskRandom),

		LocationsFile:  os.Getenv("LOCATIONS_FILE"),
		CatalogRefresh: getenv("CATALOG_REFRESH", "@every 10m"),

		DefaultRent:      getfloat("DEFAULT_RENT", 15000),
		LoanInterestRate: getfloat("LOAN_INTEREST_RATE", 0.085),
		LoanTenureYears:  getint("LOAN_TENURE_YEARS", 20),
	}
	// explicit empty value disables the periodic refresh
	if v, ok := os.LookupEnv("CATALOG_REFRESH"); ok && v == "" {
		c.CatalogRefresh = ""
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case "":
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	switch c.RentEstimateMode {
	case RentEstimateOff, RentEstimateSimulated:
	case RentEstimateHTTP:
		if c.RentAPIURL == "" {
			return errors.New("RENT_ESTIMATE_MODE=http requires RENT_API_URL")
		}
	default:
		return fmt.Errorf("invalid RENT_ESTIMATE_MODE %q", c.RentEstimateMode)
	}
	switch c.MarketDataMode {
	case MarketFixed, MarketRandom, MarketCatalog:
	default:
		return fmt.Errorf("invalid MARKET_DATA_MODE %q", c.MarketDataMode)
	}
	switch c.RiskMode {
	case RiskRandom, RiskStatic:
	default:
		return fmt.Errorf("invalid RISK_MODE %q", c.RiskMode)
	}
	if c.DefaultRent <= 0 {
		return errors.New("DEFAULT_RENT must be positive")
	}
	if c.LoanInterestRate < 0 {
		return errors.New("LOAN_INTEREST_RATE must not be negative")
	}
	if c.LoanTenureYears < 1 {
		return errors.New("LOAN_TENURE_YEARS must be at least 1")
	}
	if c.CollaboratorTimeoutMS <= 0 {
		return errors.New("COLLABORATOR_TIMEOUT_MS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) CollaboratorTimeout() time.Duration {
	return time.Duration(c.CollaboratorTimeoutMS) * time.Millisecond
}

func (c *Config) ResponseCacheTTL() time.Duration {
	return time.Duration(c.ResponseCacheTTLSecs) * time.Second
}

func (c *Config) RentCacheTTL() time.Duration {
	return time.Duration(c.RentCacheTTLSecs) * time.Second
}
