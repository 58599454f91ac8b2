package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cv-builder/internal/logger"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// RenderConfig holds PDF renderer settings.
type RenderConfig struct {
	ChromePath     string `yaml:"chrome_path"`     // empty: let chromedp find the browser
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-export budget
}

// Timeout returns the render budget as a duration.
func (r RenderConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Config is the application configuration. All fields have working defaults;
// a config file and environment variables override them.
type Config struct {
	Server       ServerConfig  `yaml:"server"`
	DataFile     string        `yaml:"data_file"`     // the one YAML document
	TemplatesDir string        `yaml:"templates_dir"` // cv.html, style.css, cv.schema.json
	WebDir       string        `yaml:"web_dir"`       // editor page assets
	DefaultPhoto string        `yaml:"default_photo"` // fallback avatar image
	Render       RenderConfig  `yaml:"render"`
	Logger       logger.Config `yaml:"logger"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:       ServerConfig{Port: "5000"},
		DataFile:     "cv_data.yaml",
		TemplatesDir: "templates",
		WebDir:       "web",
		DefaultPhoto: "static/default.png",
		Render:       RenderConfig{TimeoutSeconds: 60},
		Logger:       logger.Config{Level: "info", Format: "pretty"},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order. A missing file at the default path is fine; an
// explicitly requested file that cannot be read is an error for the caller
// to surface.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.Render.ChromePath = v
	}
	if v := os.Getenv("CV_DATA_FILE"); v != "" {
		c.DataFile = v
	}
}
