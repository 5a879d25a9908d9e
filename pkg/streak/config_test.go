package streak

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `
categories:
  - key: sleep
    displayName: Sleep
  - key: workout
    displayName: Workout
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Categories) != 2 {
		t.Errorf("Categories = %d, expected 2", len(cfg.Categories))
	}
	if !cfg.Has("sleep") || !cfg.Has("workout") {
		t.Error("expected configured keys present")
	}
	if cfg.Has("gaming") {
		t.Error("Has(gaming) = true, expected closed set")
	}

	cat, ok := cfg.Category("sleep")
	if !ok || cat.DisplayName != "Sleep" {
		t.Errorf("Category(sleep) = %+v, expected display name Sleep", cat)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_CATEGORY_NAME", "Deep Sleep")

	path := writeConfigFile(t, `
categories:
  - key: sleep
    displayName: ${TEST_CATEGORY_NAME}
  - key: workout
    displayName: ${MISSING_VAR:Workout}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cat, _ := cfg.Category("sleep"); cat.DisplayName != "Deep Sleep" {
		t.Errorf("DisplayName = %q, expected env expansion", cat.DisplayName)
	}
	if cat, _ := cfg.Category("workout"); cat.DisplayName != "Workout" {
		t.Errorf("DisplayName = %q, expected default expansion", cat.DisplayName)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty categories", "categories: []"},
		{"duplicate key", `
categories:
  - key: sleep
    displayName: Sleep
  - key: sleep
    displayName: Again
`},
		{"empty key", `
categories:
  - key: ""
    displayName: Sleep
`},
		{"empty display name", `
categories:
  - key: sleep
    displayName: ""
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/categories.yaml"); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}
