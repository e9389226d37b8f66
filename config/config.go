// Package config loads conversion parameters from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/reoring/msgconv"
)

// Config groups the parameters of both conversion directions plus the
// boolean aliases of the coercion table.
type Config struct {
	ToTyped   msgconv.ToTypedParams
	FromTyped msgconv.FromTypedParams
	Aliases   msgconv.BooleanAliases
	// Dictionary is the path of a YAML dictionary; empty selects schema-less
	// conversion.
	Dictionary string
}

// Default returns the library defaults.
func Default() Config {
	return Config{Aliases: msgconv.DefaultBooleanAliases}
}

type fileConfig struct {
	Dictionary string        `toml:"dictionary"`
	ToTyped    toTypedFile   `toml:"to_typed"`
	FromTyped  fromTypedFile `toml:"from_typed"`
}

type toTypedFile struct {
	AllowUnknownEnumValues bool   `toml:"allow_unknown_enum_values"`
	NullMarker             bool   `toml:"null_marker"`
	MaxDepth               int    `toml:"max_depth"`
	TrueAlias              string `toml:"true_alias"`
	FalseAlias             string `toml:"false_alias"`
}

type fromTypedFile struct {
	StripTrailingZeros bool `toml:"strip_trailing_zeros"`
	MaxDepth           int  `toml:"max_depth"`
}

// Load decodes path and overlays the keys it defines onto Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load msgconv config: %w", err)
	}
	return apply(raw, meta)
}

// Parse is Load over in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse msgconv config: %w", err)
	}
	return apply(raw, meta)
}

func apply(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	cfg := Default()

	if meta.IsDefined("dictionary") {
		cfg.Dictionary = strings.TrimSpace(raw.Dictionary)
	}

	if meta.IsDefined("to_typed", "allow_unknown_enum_values") {
		cfg.ToTyped.AllowUnknownEnumValues = raw.ToTyped.AllowUnknownEnumValues
	}
	if meta.IsDefined("to_typed", "null_marker") && raw.ToTyped.NullMarker {
		cfg.ToTyped.NullRepresentation = msgconv.NullMarker
	}
	if meta.IsDefined("to_typed", "max_depth") {
		cfg.ToTyped.MaxDepth = raw.ToTyped.MaxDepth
	}
	if meta.IsDefined("to_typed", "true_alias") {
		cfg.Aliases.True = strings.TrimSpace(raw.ToTyped.TrueAlias)
	}
	if meta.IsDefined("to_typed", "false_alias") {
		cfg.Aliases.False = strings.TrimSpace(raw.ToTyped.FalseAlias)
	}
	if cfg.Aliases.True != "" && strings.EqualFold(cfg.Aliases.True, cfg.Aliases.False) {
		return Config{}, fmt.Errorf("true_alias and false_alias must differ, both are %q", cfg.Aliases.True)
	}

	if meta.IsDefined("from_typed", "strip_trailing_zeros") {
		cfg.FromTyped.StripTrailingZeros = raw.FromTyped.StripTrailingZeros
	}
	if meta.IsDefined("from_typed", "max_depth") {
		cfg.FromTyped.MaxDepth = raw.FromTyped.MaxDepth
	}
	return cfg, nil
}

// Options returns converter options carrying the to-typed parameters and a
// coercion table built with the configured aliases.
func (c Config) Options() []msgconv.Option {
	return []msgconv.Option{
		msgconv.WithToTypedParams(c.ToTyped),
		msgconv.WithCoercions(msgconv.NewCoercions(c.Aliases)),
	}
}
