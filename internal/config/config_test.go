package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "REDIS_ADDR", "MARKET_DATA_MODE", "DEFAULT_RENT", "LOAN_TENURE_YEARS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.DBDriver != "" || c.RedisAddr != "" {
		t.Fatalf("db/redis should be disabled by default: %+v", c)
	}
	if c.MarketDataMode != MarketFixed {
		t.Fatalf("MarketDataMode = %q", c.MarketDataMode)
	}
	if c.DefaultRent != 15000 || c.LoanInterestRate != 0.085 || c.LoanTenureYears != 20 {
		t.Fatalf("unexpected financial defaults: %+v", c)
	}
	if c.CollaboratorTimeout() != 3*time.Second {
		t.Fatalf("timeout = %v", c.CollaboratorTimeout())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEFAULT_RENT", "12000.5")
	t.Setenv("LOAN_INTEREST_RATE", "not-a-number")
	t.Setenv("RESPONSE_CACHE_TTL_SECONDS", "60")

	c := Load()
	if c.AppPort != "9090" || c.RedisDB != 3 || c.DefaultRent != 12000.5 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.LoanInterestRate != 0.085 {
		t.Fatalf("bad float should keep default, got %v", c.LoanInterestRate)
	}
	if c.ResponseCacheTTL() != time.Minute {
		t.Fatalf("ttl = %v", c.ResponseCacheTTL())
	}
}

func TestLoad_EmptyCatalogRefreshDisables(t *testing.T) {
	t.Setenv("CATALOG_REFRESH", "")
	if c := Load(); c.CatalogRefresh != "" {
		t.Fatalf("CatalogRefresh = %q, want empty", c.CatalogRefresh)
	}
}

func validConfig() *Config {
	return &Config{
		AppPort: "8080", RentEstimateMode: RentEstimateOff, MarketDataMode: MarketFixed,
		RiskMode: RiskRandom, DefaultRent: 15000, LoanInterestRate: 0.085,
		LoanTenureYears: 20, CollaboratorTimeoutMS: 100,
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"bad driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"mysql missing host", func(c *Config) { c.DBDriver = DriverMySQL }, "MySQL"},
		{"sqlite no path", func(c *Config) { c.DBDriver = DriverSQLite }, "SQLITE_PATH"},
		{"http without url", func(c *Config) { c.RentEstimateMode = RentEstimateHTTP }, "RENT_API_URL"},
		{"bad market", func(c *Config) { c.MarketDataMode = "oracle" }, "MARKET_DATA_MODE"},
		{"bad risk", func(c *Config) { c.RiskMode = "dice" }, "RISK_MODE"},
		{"zero rent", func(c *Config) { c.DefaultRent = 0 }, "DEFAULT_RENT"},
		{"zero tenure", func(c *Config) { c.LoanTenureYears = 0 }, "LOAN_TENURE_YEARS"},
		{"no port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mut(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "x"}
	if got, want := c.MySQLDSN(), "u:p@tcp(db:3306)/x?parseTime=true&charset=utf8mb4,utf8"; got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MARKET_DATA_MODE=catalog\nAPP_PORT=9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARKET_DATA_MODE", "")
	os.Unsetenv("MARKET_DATA_MODE")
	t.Setenv("APP_PORT", "7070")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	c := Load()
	if c.MarketDataMode != MarketCatalog {
		t.Fatalf("MarketDataMode = %q, want catalog from file", c.MarketDataMode)
	}
	if c.AppPort != "7070" {
		t.Fatalf("AppPort = %q, environment must win over file", c.AppPort)
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Fatalf("empty path: %v", err)
	}
}
