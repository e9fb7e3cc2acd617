/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no --config flag is given. It is optional.
const DefaultConfigFile = "foosstats.yaml"

// Config mirrors foosstats.yaml:
//
//	rating:
//	  initial: 1500
//	  k_factor: 32
//	  winning_score: 10
//	  outcome: completion     # or goal_share
//	  sort_by_date: false
//	source:
//	  games: foos.xlsx        # path or http(s) url
//	  games_sheet: Games
//	  players: ""             # defaults to the games workbook
//	  players_sheet: Players
//	cache:
//	  bucket: bopmatic-foosstats-prod-webcache  # "" caches in memory
//	  ttl: 1h
//	log:
//	  level: info
//	  format: console         # or json
type Config struct {
	Rating RatingConfig `yaml:"rating"`
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
}

type RatingConfig struct {
	Initial      float64 `yaml:"initial"`
	KFactor      float64 `yaml:"k_factor"`
	WinningScore int     `yaml:"winning_score"`
	// Outcome is "completion" or "goal_share"; it is validated where it is
	// turned into a rating rule.
	Outcome    string `yaml:"outcome"`
	SortByDate bool   `yaml:"sort_by_date"`
}

type SourceConfig struct {
	Games        string `yaml:"games"`
	GamesSheet   string `yaml:"games_sheet"`
	Players      string `yaml:"players"`
	PlayersSheet string `yaml:"players_sheet"`
}

type CacheConfig struct {
	Bucket string        `yaml:"bucket"`
	TTL    time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Rating: RatingConfig{
			Initial:      1500,
			KFactor:      32,
			WinningScore: 10,
			Outcome:      "completion",
		},
		Source: SourceConfig{
			GamesSheet:   "Games",
			PlayersSheet: "Players",
		},
		Cache: CacheConfig{
			Bucket: WebCacheBucket,
			TTL:    DefaultCacheTTL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// reads DefaultConfigFile if it exists and otherwise returns the defaults;
// an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the structural constraints of the configuration.
func (cfg *Config) Validate() error {
	if cfg.Rating.KFactor <= 0 {
		return fmt.Errorf("rating.k_factor must be positive, got %v",
			cfg.Rating.KFactor)
	}
	if cfg.Rating.WinningScore <= 0 {
		return fmt.Errorf("rating.winning_score must be positive, got %d",
			cfg.Rating.WinningScore)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	switch cfg.Log.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("log.format %q unknown: want console|json",
			cfg.Log.Format)
	}
	return nil
}
