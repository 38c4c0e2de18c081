package config

import (
	"os"
	"path/filepath"
)

// DefaultDir returns ~/.config/audioctl (or the working directory as a
// fallback).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "audioctl")
	}
	cwd, _ := os.Getwd()
	return cwd
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), configName+"."+configType)
}
