// Package app provides the application context and dependency
// management for the evm-deployment-info CLI. It centralizes
// configuration, logging, and version information behind one value
// handed to every subcommand.
package app

import (
	"time"

	"github.com/rs/zerolog"
)

// App represents the CLI application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// UpdateRepo returns the release repository the update check queries.
func (a *App) UpdateRepo() string {
	return a.config.UpdateRepo
}

// UpdateTimeout bounds the update-check request.
func (a *App) UpdateTimeout() time.Duration {
	return a.config.UpdateTimeout
}

// InstallPath returns the expected install location of the binary.
func (a *App) InstallPath() string {
	return a.config.InstallPath
}
