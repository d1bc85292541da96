// Package config holds the awsps settings read from
// ~/.config/awsps/config.toml and AWSPS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"awsps/internal/state"

	"github.com/spf13/viper"
)

const (
	KeyPageSize         = "page_size"
	KeyStateFile        = "state_file"
	KeyShell            = "shell"
	KeyMatchAnnotations = "match_annotations"
	KeyPrompt           = "prompt"
	KeyLogFile          = "log_file"
	KeyDebug            = "debug"

	DefaultPageSize = 10
	DefaultPrompt   = "Select AWS Profile:"

	envPrefix = "AWSPS"
)

// InitConfig initializes Viper to read the awsps configuration file.
// It should be called once when the application starts.
func InitConfig() error {
	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		// Defaults and environment still apply.
		return nil
	}

	viper.AddConfigPath(filepath.Join(home, ".config", "awsps"))
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	// It's okay if the file doesn't exist.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPageSize, DefaultPageSize)
	v.SetDefault(KeyStateFile, defaultStateFile())
	v.SetDefault(KeyShell, "")
	v.SetDefault(KeyMatchAnnotations, false)
	v.SetDefault(KeyPrompt, DefaultPrompt)
	v.SetDefault(KeyLogFile, defaultLogFile())
	v.SetDefault(KeyDebug, false)
}

func defaultStateFile() string {
	path, err := state.DefaultPath()
	if err != nil {
		return filepath.Join(".aws", "current-profile")
	}
	return path
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "awsps", "debug.log")
}

// PageSize returns the number of candidate rows shown at once.
func PageSize() int {
	if n := viper.GetInt(KeyPageSize); n > 0 {
		return n
	}
	return DefaultPageSize
}

// StateFile returns the path of the persisted active profile.
func StateFile() string {
	if path := viper.GetString(KeyStateFile); path != "" {
		return expandHome(path)
	}
	return defaultStateFile()
}

// Shell returns the configured shell override, if any.
func Shell() string {
	return viper.GetString(KeyShell)
}

// MatchAnnotations reports whether the query also matches account, region and role.
func MatchAnnotations() bool {
	return viper.GetBool(KeyMatchAnnotations)
}

func Prompt() string {
	if p := viper.GetString(KeyPrompt); p != "" {
		return p
	}
	return DefaultPrompt
}

func LogFile() string {
	if path := viper.GetString(KeyLogFile); path != "" {
		return expandHome(path)
	}
	return defaultLogFile()
}

func Debug() bool {
	return viper.GetBool(KeyDebug)
}

// GetChromeProfileDirectory looks up a friendly profile name (alias)
// in the config file and returns the actual directory name.
// If no alias is found, it assumes the input is already the directory name.
func GetChromeProfileDirectory(alias string) string {
	if alias == "" {
		return ""
	}

	// Viper keys are case-insensitive.
	key := fmt.Sprintf("chrome_profiles.%s", alias)
	if viper.IsSet(key) {
		return viper.GetString(key)
	}

	return alias
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
