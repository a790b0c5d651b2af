package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/uca/collate"
)

// uca-tools config.toml key mapping to collation settings.
type fileConfig struct {
	Variable      string `toml:"variable"`
	Strength      any    `toml:"strength"` // level number or name
	Discontiguous bool   `toml:"discontiguous"`
	Trace         string `toml:"trace"`
	Data          string `toml:"data"`
}

// toolConfig holds the effective settings of a command.
type toolConfig struct {
	Options collate.Options
	Trace   string // trace level for all uca tracers
	Data    string // artifact path; empty selects the embedded table
}

func defaultToolConfig() toolConfig {
	return toolConfig{Trace: "Error"}
}

// loadToolConfig loads a TOML config file and overlays it on the defaults.
func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, fmt.Errorf("load uca-tools config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return toolConfig{}, fmt.Errorf("load uca-tools config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("variable") {
		if cfg.Options.Variable, err = collate.ParseVariableWeighting(raw.Variable); err != nil {
			return toolConfig{}, fmt.Errorf("load uca-tools config: %w", err)
		}
	}
	if meta.IsDefined("strength") {
		if cfg.Options.Strength, err = collate.ParseLevel(fmt.Sprint(raw.Strength)); err != nil {
			return toolConfig{}, fmt.Errorf("load uca-tools config: %w", err)
		}
	}
	if meta.IsDefined("discontiguous") {
		cfg.Options.Discontiguous = raw.Discontiguous
	}
	if meta.IsDefined("trace") {
		cfg.Trace = strings.TrimSpace(raw.Trace)
	}
	if meta.IsDefined("data") {
		cfg.Data = strings.TrimSpace(raw.Data)
	}
	return cfg, cfg.Options.Validate()
}

// overlayFlags lets command-line values take precedence over file values.
// Empty strings and a false discontiguous flag leave the setting alone.
func (cfg *toolConfig) overlayFlags(variable, strength string, discontiguous bool, data string) error {
	var err error
	if variable != "" {
		if cfg.Options.Variable, err = collate.ParseVariableWeighting(variable); err != nil {
			return err
		}
	}
	if strength != "" {
		if cfg.Options.Strength, err = collate.ParseLevel(strength); err != nil {
			return err
		}
	}
	if discontiguous {
		cfg.Options.Discontiguous = true
	}
	if data != "" {
		cfg.Data = data
	}
	return nil
}
