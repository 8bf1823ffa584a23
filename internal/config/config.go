package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Storage  StorageConfig
	Ledger   LedgerConfig
	Security SecurityConfig
	App      AppConfig
}

type StorageConfig struct {
	SnapshotPath string
	AuditLogPath string
}

type LedgerConfig struct {
	MinOpeningDeposit decimal.Decimal
	RecentLogEntries  int
}

type SecurityConfig struct {
	BCryptCost int
	// AdminCredential gates account enumeration; empty disables admin access.
	AdminCredential string
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

func Load() *Config {
	return &Config{
		Storage: StorageConfig{
			SnapshotPath: getEnv("LEDGER_SNAPSHOT_PATH", "bank_accounts.csv"),
			AuditLogPath: getEnv("LEDGER_AUDIT_LOG_PATH", "transaction_log.csv"),
		},
		Ledger: LedgerConfig{
			MinOpeningDeposit: getDecimalEnv("LEDGER_MIN_OPENING_DEPOSIT", decimal.NewFromInt(500)),
			RecentLogEntries:  getIntEnv("LEDGER_RECENT_LOG_ENTRIES", 10),
		},
		Security: SecurityConfig{
			BCryptCost:      getIntEnv("BCRYPT_COST", 12),
			AdminCredential: os.Getenv("ADMIN_CREDENTIAL"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if decVal, err := decimal.NewFromString(value); err == nil {
			return decVal
		}
	}
	return defaultValue
}
