package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. main loads a
// .env file beforehand (godotenv), so these cover both real env and dotenv.
//
//	PORT                 — bind port, joined as ":" + PORT
//	DATABASE_DSN         — PostgreSQL DSN
//	JWT_SECRET           — token signing secret
//	TOKEN_VALIDITY_HOURS — bearer token lifetime, hours
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(hours) * time.Hour
		}
	}
}
