package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Endpoint      EndpointConfig      `toml:"endpoint"`
	Questionnaire QuestionnaireConfig `toml:"questionnaire"`
	Session       SessionConfig       `toml:"session"`
	Labels        LabelsConfig        `toml:"labels"`
	Log           LogConfig           `toml:"log"`
}

type EndpointConfig struct {
	BaseURL     string   `toml:"base_url"`
	PredictPath string   `toml:"predict_path"`
	Timeout     Duration `toml:"timeout"`
}

type QuestionnaireConfig struct {
	// File is a YAML questionnaire; empty uses the built-in one.
	File string `toml:"file"`
}

type SessionConfig struct {
	File string `toml:"file"`
}

type LabelsConfig struct {
	Submit string `toml:"submit"`
	Busy   string `toml:"busy"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration reads "30s"-style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Defaults() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			BaseURL:     "http://localhost:5000",
			PredictPath: "/predict",
		},
		Session: SessionConfig{File: SessionFilePath()},
		Log:     LogConfig{Level: "debug", File: LogFilePath()},
	}
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint.base_url %q is not an absolute URL", c.Endpoint.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint.base_url: unsupported scheme %q", u.Scheme)
	}
	if c.Endpoint.Timeout.Duration < 0 {
		return fmt.Errorf("endpoint.timeout must not be negative")
	}
	return nil
}
