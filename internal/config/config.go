package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	AppPort       string
	GinMode       string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "klsadmin"),
		DBPassword:    getEnv("DB_PASSWORD", "klspassword"),
		DBName:        getEnv("DB_NAME", "governance_records"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AppPort:       getEnv("APP_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@klsociety.org"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
