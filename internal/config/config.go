// Package config provides centralized configuration management for refmap using viper.
//
// Configuration precedence (highest first):
//  1. Command-line flags (merged by the cmd layer)
//  2. Environment variables (REFMAP_* prefix)
//  3. Config file (.refmap.yaml in the working directory or an ancestor)
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file refmap looks for, starting in the working
// directory and walking toward the filesystem root.
const FileName = ".refmap.yaml"

var v *viper.Viper

// Initialize sets up the viper singleton: defaults, REFMAP_* environment
// bindings, and the discovered config file if one exists. Safe to call more
// than once; each call rebuilds the instance.
func Initialize() error {
	nv := viper.New()

	nv.SetDefault("extensions", []string{"swift"})
	nv.SetDefault("root", ".")
	nv.SetDefault("json", false)
	nv.SetDefault("no-pager", false)
	nv.SetDefault("diff-limit", 10)

	nv.SetEnvPrefix("REFMAP")
	nv.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	nv.AutomaticEnv()

	if path := findConfigFile(); path != "" {
		nv.SetConfigFile(path)
		if err := nv.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	v = nv
	return nil
}

// findConfigFile walks from the working directory toward the filesystem root
// and returns the first .refmap.yaml found, or "" if none exists.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ConfigFileUsed returns the path of the config file in effect, or "".
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetBool returns a boolean config value. Nil-safe: returns false when the
// singleton is not initialized.
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetString returns a string config value. Nil-safe.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns an integer config value. Nil-safe.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetStringSlice returns a string-slice config value. Nil-safe: returns an
// empty slice, never nil.
func GetStringSlice(key string) []string {
	if v == nil {
		return []string{}
	}
	result := v.GetStringSlice(key)
	if result == nil {
		return []string{}
	}
	return result
}

// Set stores a value in the running config. No-op when uninitialized.
func Set(key string, value interface{}) {
	if v == nil {
		return
	}
	v.Set(key, value)
}

// AllSettings returns every setting currently in effect. Nil-safe: returns an
// empty map when uninitialized.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}
