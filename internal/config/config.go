// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the PostgreSQL connection string. When empty the
	// server runs on the in-memory backend.
	DatabaseDSN string

	// AdminUsername is the seeded admin account name.
	AdminUsername string

	// AdminPassword is the seeded admin account password.
	AdminPassword string

	// BaseURL is the public storefront address used in share links.
	BaseURL string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.AdminUsername, "admin-user", "admin", "seeded admin username")
	flag.StringVar(&options.AdminPassword, "admin-pass", "admin", "seeded admin password")
	flag.StringVar(&options.BaseURL, "base-url", "http://localhost:8080", "public base URL for share links")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if user := os.Getenv("ADMIN_USERNAME"); user != "" {
		options.AdminUsername = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		options.AdminPassword = pass
	}
	if base := os.Getenv("BASE_URL"); base != "" {
		options.BaseURL = base
	}

	return options
}
