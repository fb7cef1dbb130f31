// Package config loads mdtabs settings from defaults, a TOML file, MDTABS_*
// environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kyaoi/mdtabs/internal/segment"
)

// Config holds application configuration.
type Config struct {
	Strip StripConfig
	UI    UIConfig
	Log   LogConfig
}

// StripConfig mirrors segment.Style plus the fill mode.
type StripConfig struct {
	HighlightColor    string        `mapstructure:"highlight_color"`
	TextColor         string        `mapstructure:"text_color"`
	Bold              bool          `mapstructure:"bold"`
	Italic            bool          `mapstructure:"italic"`
	UnderlineText     bool          `mapstructure:"underline_text"`
	UnderlineImage    string        `mapstructure:"underline_image"`
	UnderlineHeight   int           `mapstructure:"underline_height"`
	ItemsHeight       int           `mapstructure:"items_height"`
	Spacing           float64       `mapstructure:"spacing"`
	FillMode          string        `mapstructure:"fill_mode"`
	AnimationDuration time.Duration `mapstructure:"animation_duration"`
}

// UIConfig holds presentation settings outside the strip.
type UIConfig struct {
	Lang string `mapstructure:"lang"`
	Tag  string `mapstructure:"tag"`
}

// LogConfig controls the log file. The terminal belongs to the TUI, so
// logging is disabled when File is empty.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func setDefaults(v *viper.Viper) {
	def := segment.DefaultStyle()
	v.SetDefault("strip.highlight_color", def.HighlightColor)
	v.SetDefault("strip.text_color", def.TextColor)
	v.SetDefault("strip.bold", false)
	v.SetDefault("strip.italic", false)
	v.SetDefault("strip.underline_text", false)
	v.SetDefault("strip.underline_image", "")
	v.SetDefault("strip.underline_height", def.UnderlineHeight)
	v.SetDefault("strip.items_height", def.ItemsHeight)
	v.SetDefault("strip.spacing", def.Spacing)
	v.SetDefault("strip.fill_mode", segment.FillProportional.String())
	v.SetDefault("strip.animation_duration", def.AnimationDuration)
	v.SetDefault("ui.lang", "en")
	v.SetDefault("ui.tag", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"config":          "",
	"tag":             "ui.tag",
	"lang":            "ui.lang",
	"fill":            "strip.fill_mode",
	"highlight-color": "strip.highlight_color",
	"text-color":      "strip.text_color",
	"underline":       "strip.underline_image",
	"spacing":         "strip.spacing",
	"animation":       "strip.animation_duration",
	"log-file":        "log.file",
	"log-level":       "log.level",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default $XDG_CONFIG_HOME/mdtabs/config.toml)")
	fs.String("tag", "", "only show pages whose front matter lists this tag")
	fs.String("lang", "", "message language (en, ja)")
	fs.String("fill", "", "tab fill mode: proportional or equal")
	fs.String("highlight-color", "", "color of the selected tab and indicator")
	fs.String("text-color", "", "color of unselected tabs")
	fs.String("underline", "", "indicator glyph pattern (empty draws a solid bar)")
	fs.Float64("spacing", 0, "cells between tabs")
	fs.Duration("animation", 0, "indicator movement animation duration")
	fs.String("log-file", "", "write JSON logs to this file")
	fs.String("log-level", "", "log level: debug, info, warn, error")
}

// Load reads configuration. fs may be nil; only flags the user actually set
// override file and environment values.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	cfgPath := os.Getenv("MDTABS_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "mdtabs"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MDTABS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if key == "" || f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail late inside the UI.
func (c Config) Validate() error {
	if _, ok := segment.ParseFillMode(c.Strip.FillMode); !ok {
		return fmt.Errorf("%w: fill_mode %q", ErrInvalid, c.Strip.FillMode)
	}
	for name, col := range map[string]string{
		"highlight_color": c.Strip.HighlightColor,
		"text_color":      c.Strip.TextColor,
	} {
		if _, err := colorful.Hex(col); err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalid, name, col)
		}
	}
	switch {
	case c.Strip.UnderlineHeight < 0:
		return fmt.Errorf("%w: underline_height %d", ErrInvalid, c.Strip.UnderlineHeight)
	case c.Strip.ItemsHeight < 1:
		return fmt.Errorf("%w: items_height %d", ErrInvalid, c.Strip.ItemsHeight)
	case c.Strip.Spacing < 0:
		return fmt.Errorf("%w: spacing %v", ErrInvalid, c.Strip.Spacing)
	case c.Strip.AnimationDuration < 0:
		return fmt.Errorf("%w: animation_duration %v", ErrInvalid, c.Strip.AnimationDuration)
	}
	return nil
}

// Style converts the strip section into a segment.Style.
func (c Config) Style() segment.Style {
	return segment.Style{
		HighlightColor: c.Strip.HighlightColor,
		TextColor:      c.Strip.TextColor,
		Font: segment.Font{
			Bold:      c.Strip.Bold,
			Italic:    c.Strip.Italic,
			Underline: c.Strip.UnderlineText,
		},
		UnderlineImage:    c.Strip.UnderlineImage,
		UnderlineHeight:   c.Strip.UnderlineHeight,
		ItemsHeight:       c.Strip.ItemsHeight,
		Spacing:           c.Strip.Spacing,
		AnimationDuration: c.Strip.AnimationDuration,
	}
}

// FillMode returns the parsed fill mode. Validate guarantees it parses.
func (c Config) FillMode() segment.FillMode {
	m, _ := segment.ParseFillMode(c.Strip.FillMode)
	return m
}
