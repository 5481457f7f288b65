// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

type AppConfig struct {
	ReviewLimit int `mapstructure:"review_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json / text / tint
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
}

// LoadConfig は path 配下の config.yaml、.env、環境変数の順に設定を重ねて読み込みます。
// 環境変数は APP_ 接頭辞 (例: APP_DATABASE_URL) で上書きできます。
func LoadConfig(path string) (*Config, error) {
	logger := slog.Default()

	// .env は任意。存在しなければ何もしない (既存の環境変数は上書きしない)
	for _, envFile := range envFiles(path) {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to load .env file", slog.String("file", envFile), slog.Any("error", err))
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("app.review_limit", DefaultAppReviewLimit)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Warn("Config file not found. Using default settings or environment variables if available.")
		} else {
			logger.Error("Error reading config file", slog.Any("error", err))
			return nil, fmt.Errorf("config.LoadConfig: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Error("Error unmarshalling config", slog.Any("error", err))
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	logger.Debug("Config loaded successfully",
		slog.String("db_driver", cfg.Database.Driver),
		slog.Int("review_limit", cfg.App.ReviewLimit),
		slog.String("log_level", cfg.Log.Level),
		slog.String("log_format", cfg.Log.Format),
	)
	return &cfg, nil
}

func envFiles(path string) []string {
	if path == "" || path == "." {
		return []string{".env"}
	}
	return []string{filepath.Join(path, ".env"), ".env"}
}

// --- デフォルト値の補正と検証 ---
func (c *Config) normalize() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "":
		c.Database.Driver = DefaultDatabaseDriver
	case "postgresql", "pg":
		c.Database.Driver = DriverPostgres
	case "sqlite3":
		c.Database.Driver = DriverSQLite
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		c.Database.URL = DefaultDatabaseURL
	}
	if c.App.ReviewLimit < 0 {
		c.App.ReviewLimit = DefaultAppReviewLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	return nil
}
