package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Root    string
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Update-check collaborator configuration. Compiled-in defaults
	// live here rather than as package globals so the checker receives
	// them explicitly.
	UpdateRepo    string
	UpdateTimeout time.Duration
	InstallPath   string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Configuration defaults.
const (
	defaultUpdateRepo    = "evmtools/evm-deployment-info"
	defaultUpdateTimeout = 10 * time.Second
	defaultInstallPath   = "/usr/local/bin/evm-deployment-info"
)

// LoadConfig loads configuration from all sources in order of
// precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.evm-deployment-info.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".evm-deployment-info")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Root:    viper.GetString("root"),
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		UpdateRepo:    viper.GetString("update_repo"),
		UpdateTimeout: viper.GetDuration("update_timeout"),
		InstallPath:   viper.GetString("install_path"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Defaults
	if config.Root == "" {
		config.Root = "."
	}
	if config.UpdateRepo == "" {
		config.UpdateRepo = defaultUpdateRepo
	}
	if config.UpdateTimeout == 0 {
		config.UpdateTimeout = defaultUpdateTimeout
	}
	if config.InstallPath == "" {
		config.InstallPath = defaultInstallPath
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(root string, verbose, quiet, noColor bool, format, logLevel string) {
	if root != "" {
		c.Root = root
	}
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env files from the working directory. Missing
// files are fine; a local override wins over the shared file.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
