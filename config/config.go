package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "HOUSE_ETERNAL_"

// Config holds all configuration for the application
type Config struct {
	// Simulation configuration
	Game GameConfig `json:"game" envPrefix:"GAME_"`

	// Save storage configuration
	Storage StorageConfig `json:"storage" envPrefix:"STORAGE_"`

	// Server configuration
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`
}

// GameConfig holds simulation specific configuration
type GameConfig struct {
	// Number of rival realms created at genesis
	RivalRealms int `json:"rival_realms" env:"RIVAL_REALMS"`

	// Wall-clock length of one week at speed 1, in milliseconds
	TickIntervalMS int `json:"tick_interval_ms" env:"TICK_INTERVAL_MS"`

	// Probability per week of a narrative event (0-1)
	EventProbability float64 `json:"event_probability" env:"EVENT_PROBABILITY"`

	// Weeks between autosaves
	AutosaveIntervalWeeks int `json:"autosave_interval_weeks" env:"AUTOSAVE_INTERVAL_WEEKS"`

	// Run title succession as soon as an event kills a character
	EventDeathSuccession bool `json:"event_death_succession" env:"EVENT_DEATH_SUCCESSION"`

	// Directory holding cultures.yaml, traits.yaml and events.yaml.
	// Empty uses the built-in tables.
	DataDir string `json:"data_dir" env:"DATA_DIR"`
}

// StorageConfig holds save storage configuration
type StorageConfig struct {
	// Storage driver (file, sqlite, redis)
	Driver string `json:"driver" env:"DRIVER"`

	// Directory for the file driver
	Dir string `json:"dir" env:"DIR"`

	// Database connection string for the sqlite driver
	DSN string `json:"dsn" env:"DSN"`

	// Redis address for the redis driver
	RedisAddr string `json:"redis_addr" env:"REDIS_ADDR"`

	// Redis database number
	RedisDB int `json:"redis_db" env:"REDIS_DB"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port" env:"PORT"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
}

// TickInterval returns the length of a week at speed 1
func (g GameConfig) TickInterval() time.Duration {
	return time.Duration(g.TickIntervalMS) * time.Millisecond
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			RivalRealms:           15,
			TickIntervalMS:        1000,
			EventProbability:      0.02,
			AutosaveIntervalWeeks: 104,
			EventDeathSuccession:  false,
			DataDir:               "",
		},
		Storage: StorageConfig{
			Driver:    "file",
			Dir:       "./saves",
			DSN:       "./house-eternal.db",
			RedisAddr: "localhost:6379",
			RedisDB:   0,
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// Validate checks values that would leave the simulation unusable
func (c Config) Validate() error {
	if c.Game.RivalRealms < 0 {
		return fmt.Errorf("game.rival_realms must not be negative, got %d", c.Game.RivalRealms)
	}
	if c.Game.TickIntervalMS <= 0 {
		return fmt.Errorf("game.tick_interval_ms must be positive, got %d", c.Game.TickIntervalMS)
	}
	if c.Game.EventProbability < 0 || c.Game.EventProbability > 1 {
		return fmt.Errorf("game.event_probability must be within [0,1], got %v", c.Game.EventProbability)
	}
	switch c.Storage.Driver {
	case "file", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// LoadConfig loads configuration from a file, creating it with defaults when
// missing, then applies HOUSE_ETERNAL_* environment overrides.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(config, path); err != nil {
			return config, err
		}
	} else {
		file, err := os.Open(path)
		if err != nil {
			return config, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return config, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create or truncate file
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write config to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}
