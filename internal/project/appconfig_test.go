package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/FlagRing/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := model.DefaultAppConfig()
			cfg.DefaultGrowthStep = 25
			cfg.DefaultMaxRadius = 4000
			cfg.Background = "#ffffff"
			cfg.ExportLabels = true
			cfg.RecentLayouts = []string{"/tmp/a.json", "/tmp/b.json"}

			if err := SaveAppConfig(path, cfg); err != nil {
				t.Fatalf("SaveAppConfig failed: %v", err)
			}

			loaded, err := LoadAppConfig(path)
			if err != nil {
				t.Fatalf("LoadAppConfig failed: %v", err)
			}

			if loaded.DefaultGrowthStep != 25 {
				t.Errorf("expected DefaultGrowthStep=25, got %f", loaded.DefaultGrowthStep)
			}
			if loaded.DefaultMaxRadius != 4000 {
				t.Errorf("expected DefaultMaxRadius=4000, got %f", loaded.DefaultMaxRadius)
			}
			if loaded.Background != "#ffffff" {
				t.Errorf("expected Background=#ffffff, got %s", loaded.Background)
			}
			if !loaded.ExportLabels {
				t.Error("expected ExportLabels=true")
			}
			if len(loaded.RecentLayouts) != 2 {
				t.Errorf("expected 2 recent layouts, got %d", len(loaded.RecentLayouts))
			}
		})
	}
}

func TestSaveAppConfigTOMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_growth_step = 50") {
		t.Errorf("expected TOML key/value, got:\n%s", data)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(jsonPath, []byte(`{"background":"#102030"}`), 0644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(tomlPath, []byte("background = \"#102030\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		cfg, err := LoadAppConfig(path)
		if err != nil {
			t.Fatalf("LoadAppConfig(%s) failed: %v", path, err)
		}
		if cfg.Background != "#102030" {
			t.Errorf("%s: expected background from file, got %s", path, cfg.Background)
		}
		if cfg.DefaultGrowthStep != model.DefaultSettings().GrowthStep {
			t.Errorf("%s: expected default growth step, got %f", path, cfg.DefaultGrowthStep)
		}
		if cfg.DefaultOutput != "flagring.png" {
			t.Errorf("%s: expected default output, got %s", path, cfg.DefaultOutput)
		}
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultGrowthStep != defaults.DefaultGrowthStep {
		t.Errorf("expected default growth step %f, got %f", defaults.DefaultGrowthStep, cfg.DefaultGrowthStep)
	}
	if cfg.Background != "#000000" {
		t.Errorf("expected black background, got %s", cfg.Background)
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"config.json": "not valid json{{{",
		"config.toml": "background = [unterminated",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadAppConfig(path); err == nil {
			t.Errorf("expected error for invalid %s, got nil", name)
		}
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	data := []byte(`{"default_growth_step":20,"recent_layouts":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil after loading")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".flagring" {
		t.Errorf("expected .flagring directory, got %s", filepath.Dir(path))
	}
}
