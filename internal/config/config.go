package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	MongoDB DatabaseType = "mongodb"
	SQLite  DatabaseType = "sqlite"
)

const defaultAbstractAPIURL = "https://phonevalidation.abstractapi.com/v1/"

type Config struct {
	Port         string
	DatabaseType DatabaseType
	// MongoDB config
	MongoURI string
	// SQLite config
	SQLitePath string
	// Common configs
	DatabaseName string
	// External provider config
	AbstractAPIKey string
	AbstractAPIURL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "phonetrace"
	}

	// Determine database type
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(SQLite) // Default to SQLite
	}

	apiURL := os.Getenv("ABSTRACTAPI_URL")
	if apiURL == "" {
		apiURL = defaultAbstractAPIURL
	}

	config := &Config{
		Port:         port,
		DatabaseType: DatabaseType(dbType),
		DatabaseName: databaseName,
		// The provider key is optional: without it every lookup falls
		// through to the synthetic generator.
		AbstractAPIKey: os.Getenv("ABSTRACTAPI_KEY"),
		AbstractAPIURL: apiURL,
	}

	// Configure based on database type
	if config.DatabaseType == MongoDB {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set in .env file")
		}
		config.MongoURI = mongoURI
	} else if config.DatabaseType == SQLite {
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			// Default to a data directory in the current directory
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
		}
		config.SQLitePath = sqlitePath
	} else {
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return config, nil
}

// IsProviderConfigured reports whether the external lookup credential is set
func (c *Config) IsProviderConfigured() bool {
	return c.AbstractAPIKey != ""
}
