package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	DatabasePath string `json:"database_path"`

	// Path to the YAML card/character/encounter catalog.
	ContentPath string `json:"content_path"`

	// Zero or absent waits for every presentation step without a deadline.
	PresentationTimeoutMS int  `json:"presentation_timeout_ms"`
	MaxTurns              int  `json:"max_turns"`
	HandSize              *int `json:"hand_size"`
}

// LoadedConfig holds the settings the battle server runs with.
type LoadedConfig struct {
	ServerAddress       string
	DatabasePath        string
	ContentPath         string
	PresentationTimeout time.Duration
	MaxTurns            int
	HandSize            int
}

// Defaults returns the configuration used when no file is present.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: constants.DefaultServerAddr,
		DatabasePath:  constants.DefaultDBPath,
		ContentPath:   constants.DefaultContentPath,
		HandSize:      constants.DefaultHandSize,
	}
}

// LoadConfig reads the JSON configuration file at path. Absent keys keep
// their defaults; negative limits are rejected.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Defaults()
	if rc.Server != nil && strings.TrimSpace(rc.Server.Address) != "" {
		cfg.ServerAddress = strings.TrimSpace(rc.Server.Address)
	}
	if p := strings.TrimSpace(rc.DatabasePath); p != "" {
		cfg.DatabasePath = p
	}
	if p := strings.TrimSpace(rc.ContentPath); p != "" {
		cfg.ContentPath = p
	}

	if rc.PresentationTimeoutMS < 0 {
		return nil, fmt.Errorf("config file %s: presentation_timeout_ms must not be negative", path)
	}
	cfg.PresentationTimeout = time.Duration(rc.PresentationTimeoutMS) * time.Millisecond

	if rc.MaxTurns < 0 {
		return nil, fmt.Errorf("config file %s: max_turns must not be negative", path)
	}
	cfg.MaxTurns = rc.MaxTurns

	if rc.HandSize != nil {
		if *rc.HandSize <= 0 {
			return nil, fmt.Errorf("config file %s: hand_size must be positive", path)
		}
		cfg.HandSize = *rc.HandSize
	}
	return cfg, nil
}

// FromEnv loads the file named by BATTLE_CONFIG (or the default path) and
// applies the BATTLE_DB override. A missing default file is not an error.
func FromEnv() (*LoadedConfig, error) {
	path := os.Getenv(constants.EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigPath
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Defaults()
	}
	if db := strings.TrimSpace(os.Getenv(constants.EnvDBPath)); db != "" {
		cfg.DatabasePath = db
	}
	return cfg, nil
}
