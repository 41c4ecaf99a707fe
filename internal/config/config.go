// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	DatabasePath string
	JWTSecretKey string
	// AvatarDir is where uploaded profile avatars are stored; it is served
	// under /static/avatars/.
	AvatarDir   string
	Environment string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "roomhub.db"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		AvatarDir:    getEnv("AVATAR_DIR", "web/static/avatars"),
		Environment:  env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		if cfg.JWTSecretKey == "" {
			log.Fatalf("Missing required production environment variable: JWT_SECRET_KEY")
		}
	} else if cfg.JWTSecretKey == "" {
		// Development fallback so a fresh checkout runs out of the box.
		cfg.JWTSecretKey = "dev-only-secret"
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
