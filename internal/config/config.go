// Package config loads bgplay settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete bgplay configuration.
type Config struct {
	Rules    Rules
	Match    Match
	Autoplay Autoplay
	Log      Log
}

// Rules selects the optional rules of play.
type Rules struct {
	Jacoby   bool // money play only
	Crawford bool
	MaxCube  int
	METFile  string // empty uses the built-in table
}

// Match sets what is played.
type Match struct {
	Length int // 0 plays a money session of Games games
	Games  int
}

// Autoplay tunes the automated runner.
type Autoplay struct {
	Delay   time.Duration // pause before each automated decision
	Seed    int64
	Workers int // concurrent matches for sim
	Matches int // matches per sim run
}

// Log configures logging.
type Log struct {
	Level string
}

// file mirrors the HCL layout. Every block and attribute is optional so a
// partial file only overrides what it names.
type file struct {
	Rules    *rulesBlock    `hcl:"rules,block"`
	Match    *matchBlock    `hcl:"match,block"`
	Autoplay *autoplayBlock `hcl:"autoplay,block"`
	Log      *logBlock      `hcl:"log,block"`
}

type rulesBlock struct {
	Jacoby   *bool   `hcl:"jacoby,optional"`
	Crawford *bool   `hcl:"crawford,optional"`
	MaxCube  *int    `hcl:"max_cube,optional"`
	METFile  *string `hcl:"met_file,optional"`
}

type matchBlock struct {
	Length *int `hcl:"length,optional"`
	Games  *int `hcl:"games,optional"`
}

type autoplayBlock struct {
	Delay   *string `hcl:"delay,optional"`
	Seed    *int64  `hcl:"seed,optional"`
	Workers *int    `hcl:"workers,optional"`
	Matches *int    `hcl:"matches,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules: Rules{
			Jacoby:   true,
			Crawford: true,
			MaxCube:  512,
		},
		Match: Match{
			Length: 5,
			Games:  10,
		},
		Autoplay: Autoplay{
			Seed:    1,
			Workers: 4,
			Matches: 100,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads filename over the defaults. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if err := cfg.merge(raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c *Config) merge(raw file) error {
	if r := raw.Rules; r != nil {
		set(&c.Rules.Jacoby, r.Jacoby)
		set(&c.Rules.Crawford, r.Crawford)
		set(&c.Rules.MaxCube, r.MaxCube)
		set(&c.Rules.METFile, r.METFile)
	}
	if m := raw.Match; m != nil {
		set(&c.Match.Length, m.Length)
		set(&c.Match.Games, m.Games)
	}
	if a := raw.Autoplay; a != nil {
		if a.Delay != nil {
			d, err := time.ParseDuration(*a.Delay)
			if err != nil {
				return fmt.Errorf("autoplay delay: %w", err)
			}
			c.Autoplay.Delay = d
		}
		set(&c.Autoplay.Seed, a.Seed)
		set(&c.Autoplay.Workers, a.Workers)
		set(&c.Autoplay.Matches, a.Matches)
	}
	if l := raw.Log; l != nil {
		set(&c.Log.Level, l.Level)
	}
	return nil
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if c.Rules.MaxCube < 1 || c.Rules.MaxCube&(c.Rules.MaxCube-1) != 0 {
		return fmt.Errorf("max_cube must be a power of two, got %d", c.Rules.MaxCube)
	}
	if c.Match.Length < 0 {
		return fmt.Errorf("match length must not be negative, got %d", c.Match.Length)
	}
	if c.Match.Length == 0 && c.Match.Games < 1 {
		return fmt.Errorf("a money session needs at least one game, got %d", c.Match.Games)
	}
	if c.Autoplay.Delay < 0 {
		return fmt.Errorf("autoplay delay must not be negative, got %s", c.Autoplay.Delay)
	}
	if c.Autoplay.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Autoplay.Workers)
	}
	if c.Autoplay.Matches < 1 {
		return fmt.Errorf("matches must be positive, got %d", c.Autoplay.Matches)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
