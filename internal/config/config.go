package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/triviawheel/internal/i18n"
)

// Config holds application configuration.
type Config struct {
	UI   UIConfig
	Game GameConfig
	Log  LogConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language  string
	WheelSize int `mapstructure:"wheel_size"`
}

// Lang returns the configured interface language, falling back to English
// when the file carries an unknown code.
func (u UIConfig) Lang() i18n.Lang {
	if lang, ok := i18n.Parse(u.Language); ok {
		return lang
	}
	return i18n.English
}

// GameConfig holds pacing and board-size settings. EasyQuestions and
// HardQuestions cap how much of each shipped bank is in play; zero means the
// full bank.
type GameConfig struct {
	SpinSeconds   int `mapstructure:"spin_seconds"`
	ExtraTurns    int `mapstructure:"extra_turns"`
	AnswerSeconds int `mapstructure:"answer_seconds"`
	EasyQuestions int `mapstructure:"easy_questions"`
	HardQuestions int `mapstructure:"hard_questions"`
}

func (g GameConfig) SpinDuration() time.Duration {
	return time.Duration(g.SpinSeconds) * time.Second
}

func (g GameConfig) AnswerDuration() time.Duration {
	return time.Duration(g.AnswerSeconds) * time.Second
}

// LogConfig holds file logging settings.
type LogConfig struct {
	Enabled bool
	Dir     string
	Level   string
}

// Load reads configuration from file and env. Env var overrides use prefix TRIVIAWHEEL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ui.language", "en")
	v.SetDefault("ui.wheel_size", 21)
	v.SetDefault("game.spin_seconds", 4)
	v.SetDefault("game.extra_turns", 5)
	v.SetDefault("game.answer_seconds", 30)
	v.SetDefault("game.easy_questions", 0)
	v.SetDefault("game.hard_questions", 0)
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "triviawheel", "logs"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TRIVIAWHEEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "triviawheel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TRIVIAWHEEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// bounds guard against hand-edited files
	c.Game.SpinSeconds = clamp(c.Game.SpinSeconds, 1, 30)
	c.Game.ExtraTurns = clamp(c.Game.ExtraTurns, 1, 12)
	c.Game.AnswerSeconds = clamp(c.Game.AnswerSeconds, 5, 120)
	c.Game.EasyQuestions = clamp(c.Game.EasyQuestions, 0, 500)
	c.Game.HardQuestions = clamp(c.Game.HardQuestions, 0, 500)
	c.UI.WheelSize = clamp(c.UI.WheelSize, 11, 41)
	if !i18n.Lang(c.UI.Language).Valid() {
		c.UI.Language = string(i18n.English)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings view so adjustments survive restarts.
func Save(cfg Config) error {
	path := os.Getenv("TRIVIAWHEEL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "triviawheel", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.wheel_size", cfg.UI.WheelSize)
	v.Set("game.spin_seconds", cfg.Game.SpinSeconds)
	v.Set("game.extra_turns", cfg.Game.ExtraTurns)
	v.Set("game.answer_seconds", cfg.Game.AnswerSeconds)
	v.Set("game.easy_questions", cfg.Game.EasyQuestions)
	v.Set("game.hard_questions", cfg.Game.HardQuestions)
	v.Set("log.enabled", cfg.Log.Enabled)
	v.Set("log.dir", cfg.Log.Dir)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
