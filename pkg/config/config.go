package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	NPM    NPMConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type GitHubConfig struct {
	// APIBaseURL overrides the GitHub API endpoint; empty means the public
	// api.github.com.
	APIBaseURL string
	// Token is the server-wide fallback token used when a request does not
	// carry its own.
	Token string
}

type NPMConfig struct {
	// RegistryURL is the prefix of the registry user-record endpoint; the
	// username is appended to it. The canonical registry.npmjs.org endpoint
	// no longer serves emails, hence the mirror default.
	RegistryURL string
}

const defaultNPMRegistryURL = "https://skimdb.npmjs.com/registry/_users/org.couchdb.user:"

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		GitHub: GitHubConfig{
			APIBaseURL: getEnv("GITHUB_API_URL", ""),
			Token:      getEnv("GITHUB_TOKEN", ""),
		},
		NPM: NPMConfig{
			RegistryURL: getEnv("NPM_REGISTRY_URL", defaultNPMRegistryURL),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
