package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDriver      string
	DBDSN         string
	DBAutoMigrate bool

	JWTSecret  string
	SessionTTL time.Duration

	CORSAllowedOrigins []string
	LogLevel           string

	AdminBootstrapUsername string
	AdminBootstrapPassword string
}

// LoadEnv reads configuration from the process environment, after merging a
// local .env file when one exists.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBDSN:         getEnv("DB_DSN", ""),
		DBAutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),

		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-me"),
		SessionTTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 480)) * time.Minute,

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AdminBootstrapUsername: getEnv("ADMIN_BOOTSTRAP_USERNAME", ""),
		AdminBootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
	}
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsList(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
