package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-md2conf/internal/yamlutil"
)

// Sentinel errors for configuration loading.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config file")
	ErrMissingServer  = errors.New("missing Confluence base URL")
	ErrMissingCreds   = errors.New("missing Confluence credentials")
)

// Config holds connection settings for the Confluence instance. Values from
// the YAML file can be overridden by environment variables, which keeps the
// API token out of files in CI.
type Config struct {
	BaseURL  string `yaml:"baseUrl"`
	Email    string `yaml:"email"`
	APIToken string `yaml:"apiToken"`
	SpaceKey string `yaml:"spaceKey"`
	ParentID string `yaml:"parentId"`
}

// LoadConfig reads and parses a YAML config file. Unknown fields are
// rejected so typos surface immediately.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. Env vars win
// over file values. getenv is injected for testability.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("CONFLUENCE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("CONFLUENCE_EMAIL"); v != "" {
		c.Email = v
	}
	if v := getenv("CONFLUENCE_API_TOKEN"); v != "" {
		c.APIToken = v
	}
}

// validate checks that enough is configured to reach the server.
func (c *Config) validate() error {
	if c.BaseURL == "" {
		return ErrMissingServer
	}
	if c.Email == "" || c.APIToken == "" {
		return ErrMissingCreds
	}
	return nil
}
