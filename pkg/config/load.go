package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath (searching parent
// directories) and then processes the environment. Missing files are not an
// error; variables already set in the environment win.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		envFilePath = []string{".env"}
	}
	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Info("Loaded environment from file", "path", foundPath)
		break
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.Auth == nil || cfg.Auth.Jwt == nil || strings.TrimSpace(cfg.Auth.Jwt.Secret) == "" {
		return nil, errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if cfg.EventBus.Driver != "memory" && cfg.EventBus.Driver != "redis" {
		return nil, fmt.Errorf("unsupported EVENT_BUS_DRIVER %q", cfg.EventBus.Driver)
	}
	if cfg.EventBus.Driver == "redis" && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("EVENT_BUS_DRIVER=redis requires REDIS_URL")
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"event_bus", cfg.EventBus.Driver,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
