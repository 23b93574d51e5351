package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const appDir = "VaultKeeper"

type Config struct {
	// Storage
	DatabaseDSN  string `env:"DATABASE_URI"`  // PostgreSQL DSN; если пусто, используется локальный SQLite
	ClientDBPath string `env:"VAULT_DB_PATH"` // путь к SQLite-файлу

	// Logging
	LogLevel     string `env:"LOG_LEVEL"`
	LogFile      string `env:"LOG_FILE"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB"`
	LogMaxFiles  int    `env:"LOG_MAX_FILES"`

	Version bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env служат значениями флагов по умолчанию
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к PostgreSQL (вместо локального файла)")
	flag.StringVar(&cfg.ClientDBPath, "db", cfg.ClientDBPath, "path to local SQLite vault file")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write JSON logs to this file (rotated)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ClientDBPath == "" {
		c.ClientDBPath = DefaultDBPath()
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 10
	}
	if c.LogMaxFiles <= 0 {
		c.LogMaxFiles = 5
	}
}

// DefaultDBPath возвращает <UserConfigDir>/VaultKeeper/vault.db или путь в домашнем каталоге.
func DefaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		home, _ := os.UserHomeDir()
		base = home
	}
	return filepath.Join(base, appDir, "vault.db")
}

// StoreDSN возвращает строку подключения хранилища: DSN Postgres, если задан, иначе путь к SQLite.
func (c *Config) StoreDSN() string {
	if dsn := strings.TrimSpace(c.DatabaseDSN); dsn != "" {
		return dsn
	}
	return c.ClientDBPath
}
