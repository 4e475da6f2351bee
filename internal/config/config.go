package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	ServerPort      string
	GinMode         string
	FrontendOrigins []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "intask"),
		DBPassword:      getEnv("DB_PASSWORD", "intask"),
		DBName:          getEnv("DB_NAME", "intask"),
		JWTSecret:       getEnv("JWT_SECRET", "default-secret-key-change-me"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		FrontendOrigins: strings.Split(getEnv("FRONTEND_URL", "http://localhost:5173"), ","),
	}
}

// IsProduction reports whether the server runs in release mode. Error
// responses omit diagnostic detail when it does.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
