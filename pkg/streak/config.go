package streak

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the closed category set the engine accepts. Adding a category is
// a config change, not a code change.
type Config struct {
	Categories []CategoryConfig `yaml:"categories"`

	keys map[string]CategoryConfig
}

// CategoryConfig is one trackable habit category.
type CategoryConfig struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"displayName"`
}

// LoadConfig loads the category configuration from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.index()
	return &config, nil
}

// NewConfig builds a Config from in-code categories. Test use mostly.
func NewConfig(categories ...CategoryConfig) *Config {
	c := &Config{Categories: categories}
	c.index()
	return c
}

func (c *Config) index() {
	c.keys = make(map[string]CategoryConfig, len(c.Categories))
	for _, cat := range c.Categories {
		c.keys[cat.Key] = cat
	}
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("no categories configured")
	}

	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.Key == "" {
			return fmt.Errorf("category with empty key found")
		}
		if seen[cat.Key] {
			return fmt.Errorf("duplicate category key: %s", cat.Key)
		}
		seen[cat.Key] = true

		if cat.DisplayName == "" {
			return fmt.Errorf("category %s has empty displayName", cat.Key)
		}
	}

	return nil
}

// Has reports whether key is a configured category.
func (c *Config) Has(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// Category returns the configuration for key.
func (c *Config) Category(key string) (CategoryConfig, bool) {
	cat, ok := c.keys[key]
	return cat, ok
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
