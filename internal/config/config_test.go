package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setupConfig(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if content != "" {
		dir := filepath.Join(home, ".config", "awsps")
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := InitConfig(); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	return home
}

func TestInitConfigDefaults(t *testing.T) {
	home := setupConfig(t, "")

	if PageSize() != DefaultPageSize {
		t.Errorf("Expected page size %d, got %d", DefaultPageSize, PageSize())
	}
	if Prompt() != DefaultPrompt {
		t.Errorf("Expected prompt %q, got %q", DefaultPrompt, Prompt())
	}
	if want := filepath.Join(home, ".aws", "current-profile"); StateFile() != want {
		t.Errorf("Expected state file %s, got %s", want, StateFile())
	}
	if Shell() != "" {
		t.Errorf("Expected empty shell, got %q", Shell())
	}
	if MatchAnnotations() || Debug() {
		t.Error("Expected match_annotations and debug to default to false")
	}
	if !strings.HasSuffix(LogFile(), filepath.Join("awsps", "debug.log")) {
		t.Errorf("Unexpected log file %s", LogFile())
	}
}

func TestInitConfigFromFile(t *testing.T) {
	home := setupConfig(t, `
page_size = 5
state_file = "~/state/profile"
shell = "fish"
match_annotations = true
prompt = "Profile:"

[chrome_profiles]
work = "Profile 1"
`)

	if PageSize() != 5 {
		t.Errorf("Expected page size 5, got %d", PageSize())
	}
	if want := filepath.Join(home, "state", "profile"); StateFile() != want {
		t.Errorf("Expected state file %s, got %s", want, StateFile())
	}
	if Shell() != "fish" {
		t.Errorf("Expected shell fish, got %q", Shell())
	}
	if !MatchAnnotations() {
		t.Error("Expected match_annotations to be true")
	}
	if Prompt() != "Profile:" {
		t.Errorf("Expected prompt 'Profile:', got %q", Prompt())
	}
	if got := GetChromeProfileDirectory("work"); got != "Profile 1" {
		t.Errorf("Expected 'Profile 1', got %q", got)
	}
}

func TestInitConfigEnvironment(t *testing.T) {
	t.Setenv("AWSPS_PAGE_SIZE", "3")
	t.Setenv("AWSPS_DEBUG", "true")
	setupConfig(t, "page_size = 7\n")

	if PageSize() != 3 {
		t.Errorf("Expected environment to override page size, got %d", PageSize())
	}
	if !Debug() {
		t.Error("Expected debug from AWSPS_DEBUG")
	}
}

func TestInitConfigInvalidFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, ".config", "awsps")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("page_size = = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitConfig(); err == nil {
		t.Error("Expected error for malformed config file")
	}
	if PageSize() != DefaultPageSize {
		t.Errorf("Defaults should still apply, got page size %d", PageSize())
	}
}

func TestPageSizeIgnoresNonPositive(t *testing.T) {
	setupConfig(t, "page_size = 0\n")

	if PageSize() != DefaultPageSize {
		t.Errorf("Expected default page size for 0, got %d", PageSize())
	}
}

func TestGetChromeProfileDirectory(t *testing.T) {
	setupConfig(t, "")

	tests := []struct {
		name     string
		alias    string
		expected string
	}{
		{"Empty alias", "", ""},
		{"Non-existent alias", "nonexistent", "nonexistent"},
		{"Direct directory name", "Profile 1", "Profile 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetChromeProfileDirectory(tt.alias)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := map[string]string{
		"~":            home,
		"~/x/y":        filepath.Join(home, "x", "y"),
		"/abs/path":    "/abs/path",
		"relative":     "relative",
		"~other/thing": "~other/thing",
	}
	for in, want := range tests {
		if got := expandHome(in); got != want {
			t.Errorf("expandHome(%q) = %q, expected %q", in, got, want)
		}
	}
}
