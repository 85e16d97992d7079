package cmd

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables holding the defaults of the command line flags.
// They are also passed to extensions.
const (
	EnvTrades   = "PLB_TRADES"
	EnvCash     = "PLB_CASH"
	EnvDatabase = "PLB_DB"
	EnvCurrency = "PLB_CURRENCY"
	EnvLogLevel = "PLB_LOG_LEVEL"
	EnvEncoding = "PLB_ENCODING"
)

// Config holds the application configuration.
type Config struct {
	TradesFile string // trade history, SBI csv or jsonl
	CashFile   string // deposit and withdrawal history, SBI csv or jsonl
	Database   string // sqlite database used by 'save'
	Currency   string // display currency
	LogLevel   string // debug, info, warn or error
	Encoding   string // encoding of SBI csv exports
}

// LoadConfig loads the configuration from the environment, a .env file in
// the working directory is loaded first if present.
func LoadConfig() Config {
	// the .env file is optional
	_ = godotenv.Load()

	return Config{
		TradesFile: getEnv(EnvTrades, "trades.csv"),
		CashFile:   getEnv(EnvCash, ""),
		Database:   getEnv(EnvDatabase, "plbook.db"),
		Currency:   getEnv(EnvCurrency, "JPY"),
		LogLevel:   getEnv(EnvLogLevel, "info"),
		Encoding:   getEnv(EnvEncoding, "sjis"),
	}
}

// Environ returns the configuration as environment variables.
func (c Config) Environ() []string {
	return []string{
		EnvTrades + "=" + c.TradesFile,
		EnvCash + "=" + c.CashFile,
		EnvDatabase + "=" + c.Database,
		EnvCurrency + "=" + c.Currency,
		EnvLogLevel + "=" + c.LogLevel,
		EnvEncoding + "=" + c.Encoding,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
