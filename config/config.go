// SPDX-License-Identifier: EPL-2.0

// Package config reads instrument descriptions: which sample file sits on
// which key pair, and what it is called.
//
//	version = "1.0.0"
//	samples_dir = "samples"
//
//	[[slot]]
//	key_pair = 7
//	file = "kick.wav"
//	name = "Kick"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/ik5/rrlite/keypair"
)

// DefaultVersion is assumed when the file does not declare one.
const DefaultVersion = "1.0.0"

// supported is the range of config versions this package understands.
var supported = mustConstraint(">= 1.0.0, < 2.0.0")

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}

	return cs
}

// Slot binds one sample file to a key pair.
type Slot struct {
	KeyPair int    `toml:"key_pair"`
	File    string `toml:"file"`
	Name    string `toml:"name"` // optional display name override
	Path    string `toml:"-"`    // File resolved against SamplesDir
}

// Validate checks the slot on its own; cross-slot rules live in Parse.
func (s *Slot) Validate() error {
	if !keypair.Valid(s.KeyPair) {
		return fmt.Errorf("%w: key_pair %d outside [0,%d]", ErrInvalidSlot, s.KeyPair, keypair.Count-1)
	}

	if s.File == "" {
		return fmt.Errorf("%w: key_pair %d has no file", ErrInvalidSlot, s.KeyPair)
	}

	return nil
}

// Config is a whole instrument description.
type Config struct {
	Version    string `toml:"version"`
	SamplesDir string `toml:"samples_dir"`
	Slots      []Slot `toml:"slot"`
}

// Load reads and validates the instrument file at path. Relative sample
// paths resolve against the directory holding the file.
func Load(path string, log zerolog.Logger) (*Config, error) {
	log.Debug().Str("path", path).Msg("Loading instrument file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, filepath.Dir(path), log)
}

// Parse decodes and validates TOML data. baseDir anchors a relative
// samples_dir.
func Parse(data []byte, baseDir string, log zerolog.Logger) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	v, err := semver.NewVersion(cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, cfg.Version, err)
	}

	if !supported.Check(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	dir := cfg.SamplesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}

	var seen [keypair.Count]bool
	for i := range cfg.Slots {
		s := &cfg.Slots[i]
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("slot #%d: %w", i+1, err)
		}

		if seen[s.KeyPair] {
			return nil, fmt.Errorf("slot #%d: %w: %d", i+1, ErrDuplicateKeyPair, s.KeyPair)
		}
		seen[s.KeyPair] = true

		s.Path = s.File
		if !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(dir, s.Path)
		}

		log.Debug().
			Int("key_pair", s.KeyPair).
			Str("path", s.Path).
			Msg("Validated slot")
	}

	log.Debug().Int("slots", len(cfg.Slots)).Msg("Instrument file loaded")

	return &cfg, nil
}

// Slot returns the slot bound to key pair idx.
func (c *Config) Slot(idx int) (Slot, bool) {
	for _, s := range c.Slots {
		if s.KeyPair == idx {
			return s, true
		}
	}

	return Slot{}, false
}

// Paths lists the resolved sample paths in file order.
func (c *Config) Paths() []string {
	out := make([]string, len(c.Slots))
	for i, s := range c.Slots {
		out[i] = s.Path
	}

	return out
}
