// Package config collects the game's runtime settings.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Difficulty scales the damage the player takes.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "normal"
	}
}

// DamageFactor is the multiplier applied to incoming player damage.
func (d Difficulty) DamageFactor() float32 {
	switch d {
	case Easy:
		return 0.5
	case Hard:
		return 2
	default:
		return 1
	}
}

// ParseDifficulty accepts easy, normal or hard. Anything else is Normal.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Normal
	}
}

// Renderer names a presentation backend.
type Renderer string

const (
	RendererEbiten   Renderer = "ebiten"
	RendererTUI      Renderer = "tui"
	RendererHeadless Renderer = "headless"
)

// Config holds every setting the game reads at startup.
type Config struct {
	DataDir       string
	Level         string
	Difficulty    Difficulty
	Renderer      Renderer
	Width         int
	Height        int
	DebugAddr     string // empty disables the debug server
	Locale        string
	LocaleDir     string
	Audio         bool
	HeadlessTicks int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:       "data",
		Level:         "levels/e1m1.lvl",
		Difficulty:    Normal,
		Renderer:      RendererEbiten,
		Width:         1280,
		Height:        720,
		Locale:        "en",
		LocaleDir:     "data/locales",
		Audio:         true,
		HeadlessTicks: 600,
	}
}

// FromEnv returns Default with WORSHIP_* environment overrides applied.
// A .env file in the working directory is loaded first when present.
func FromEnv() Config {
	_ = godotenv.Load()
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*dst = n
			}
		}
	}

	str("WORSHIP_DATA_DIR", &cfg.DataDir)
	str("WORSHIP_LEVEL", &cfg.Level)
	str("WORSHIP_DEBUG_ADDR", &cfg.DebugAddr)
	str("WORSHIP_LOCALE", &cfg.Locale)
	str("WORSHIP_LOCALE_DIR", &cfg.LocaleDir)
	num("WORSHIP_WIDTH", &cfg.Width)
	num("WORSHIP_HEIGHT", &cfg.Height)
	num("WORSHIP_HEADLESS_TICKS", &cfg.HeadlessTicks)

	if v, ok := lookup("WORSHIP_DIFFICULTY"); ok {
		cfg.Difficulty = ParseDifficulty(v)
	}
	if v, ok := lookup("WORSHIP_RENDERER"); ok {
		if r, ok := ParseRenderer(v); ok {
			cfg.Renderer = r
		}
	}
	if v, ok := lookup("WORSHIP_AUDIO"); ok {
		cfg.Audio = parseSwitch(v, cfg.Audio)
	}
	return cfg
}

// ParseRenderer validates a renderer name.
func ParseRenderer(s string) (Renderer, bool) {
	switch r := Renderer(strings.ToLower(strings.TrimSpace(s))); r {
	case RendererEbiten, RendererTUI, RendererHeadless:
		return r, true
	}
	return "", false
}

func parseSwitch(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	case "off", "false", "0", "no":
		return false
	}
	return fallback
}
