package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		TokenCleanup
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		BcryptCost  int
		TokenExpiry time.Duration // 0 means tokens never expire
	}
	TokenCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)     // bcrypt cost factor
	v.SetDefault("auth_token_expiry", "720h") // 30 days

	// Token cleanup defaults
	v.SetDefault("token_cleanup_enabled", true)
	v.SetDefault("token_cleanup_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
		},
		TokenCleanup: TokenCleanup{
			Enabled:  v.GetBool("TOKEN_CLEANUP_ENABLED"),
			Schedule: v.GetString("TOKEN_CLEANUP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
