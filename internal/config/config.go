package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr  = ":8501"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultLogLevel    = "info"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

// ErrInvalidTemperature is returned for temperatures the completion request
// cannot carry. A zero value is dropped from the request body, which makes the
// provider fall back to its own default.
var ErrInvalidTemperature = errors.New("temperature must be greater than 0 and at most 2")

type Config struct {
	OpenAIKey     string
	TelegramToken string
	Settings      Settings
}

// Settings holds the non-secret knobs read from settings.yml.
type Settings struct {
	ListenAddr  string  `yaml:"listen_addr"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	BaseURL     string  `yaml:"base_url"`
	LogLevel    string  `yaml:"log_level"`
}

func DefaultSettings() Settings {
	return Settings{
		ListenAddr:  DefaultListenAddr,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads secrets from the environment (after merging envPath, if present)
// and settings from settingsPath. A missing .env or settings file is not an error.
func Load(envPath, settingsPath string) (Config, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envPath, err)
	}

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OpenAIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		Settings:      settings,
	}
	if cfg.OpenAIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %s: %w", path, err)
	}

	if strings.TrimSpace(settings.ListenAddr) == "" {
		settings.ListenAddr = DefaultListenAddr
	}
	if strings.TrimSpace(settings.Model) == "" {
		settings.Model = DefaultModel
	}
	if strings.TrimSpace(settings.LogLevel) == "" {
		settings.LogLevel = DefaultLogLevel
	}
	if settings.Temperature <= 0 || settings.Temperature > 2 {
		return settings, fmt.Errorf("parse %s: %w (got %v)", path, ErrInvalidTemperature, settings.Temperature)
	}
	return settings, nil
}
