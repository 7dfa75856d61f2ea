package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all environment variables for the storefront API.
type Config struct {
	Port            string // HTTP port (default: 5000)
	MongoURL        string // MongoDB connection string
	MongoDB         string // Database name (default: storefront)
	JWTSecret       string // JWT signing secret, required
	JWTExpiresHours int    // Token lifetime in hours (default: 24)
	RedisURL        string // Optional Redis connection string for caching
	UploadDir       string // Local directory for uploaded images (default: uploads)
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		MongoURL:  os.Getenv("MONGO_URL"),
		MongoDB:   os.Getenv("MONGO_DB"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisURL:  os.Getenv("REDIS_URL"),
		UploadDir: os.Getenv("UPLOAD_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "storefront"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	cfg.JWTExpiresHours = 24
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 1 {
			return nil, fmt.Errorf("JWT_EXPIRES_HOURS must be a positive integer")
		}
		cfg.JWTExpiresHours = hours
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
