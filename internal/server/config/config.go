// Package config читает конфигурацию relay из окружения.
// Локально переменные можно положить в .env: он подхватывается,
// если присутствует, и никогда не перекрывает реальное окружение.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config конфигурация relay
type Config struct {
	Addr       string
	SQLitePath string
	// RedisURL пустой отключает redis: presence живет в памяти процесса
	RedisURL  string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load читает конфигурацию из .env (если есть) и окружения
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Addr:       getenv("NOTARYROOM_ADDR", ":8080"),
		SQLitePath: getenv("NOTARYROOM_SQLITE_PATH", "./data/notaryroom.db"),
		RedisURL:   getenv("NOTARYROOM_REDIS_URL", ""),
		JWTSecret:  getenv("NOTARYROOM_JWT_SECRET", ""),
		TokenTTL:   time.Duration(getenvInt("NOTARYROOM_TOKEN_TTL_SECONDS", 86400)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("NOTARYROOM_JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
