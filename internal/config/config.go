package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/sentiboard/internal/sentiment"
)

// Config captures everything sentiboard reads from config.toml.
type Config struct {
	APIBase        string
	SessionID      string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogDir         string
	TimeZone       string
	Location       *time.Location
	ScoreScale     sentiment.Scale
	ShowEscalate   bool
}

const (
	defaultConfigPath     = "~/.config/sentiboard/config.toml"
	defaultLogDir         = "~/.local/share/sentiboard/logs"
	defaultAPIBase        = "127.0.0.1:8080"
	defaultPollInterval   = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultTimeZone       = "Asia/Kolkata"
	logFileName           = "sentiboard.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	loc, err := time.LoadLocation(defaultTimeZone)
	if err != nil {
		loc = time.Local
	}
	return Config{
		APIBase:        defaultAPIBase,
		PollInterval:   defaultPollInterval,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
		TimeZone:       defaultTimeZone,
		Location:       loc,
		ScoreScale:     sentiment.ScaleAuto,
		ShowEscalate:   true,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		SessionID      string `toml:"session_id"`
		PollInterval   string `toml:"poll_interval"`
		RequestTimeout string `toml:"request_timeout"`
		LogDir         string `toml:"log_dir"`
		TimeZone       string `toml:"timezone"`
		ScoreScale     string `toml:"score_scale"`
		ShowEscalate   *bool  `toml:"show_escalate"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	cfg.SessionID = strings.TrimSpace(raw.SessionID)

	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, defaultPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}

	if v := strings.TrimSpace(raw.TimeZone); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timezone %q: %w", v, err)
		}
		cfg.TimeZone = v
		cfg.Location = loc
	}

	scale, ok := sentiment.ParseScale(raw.ScoreScale)
	if !ok {
		return Config{}, fmt.Errorf("parse config: score_scale %q: want auto, unit or ten", raw.ScoreScale)
	}
	cfg.ScoreScale = scale

	if raw.ShowEscalate != nil {
		cfg.ShowEscalate = *raw.ShowEscalate
	}

	return cfg, nil
}

// LogPath returns the path of sentiboard's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %v", key, d)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
