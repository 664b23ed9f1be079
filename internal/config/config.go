package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	TokenSecret string
	CORSOrigins []string
}

// Load reads configuration from the environment, after loading a local
// .env file if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:        getenv("PORT", "8080"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "pokedex"),
		TokenSecret: getenv("TOKEN_SECRET", ""),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
