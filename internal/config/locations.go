package config

import (
	"os"
	"path/filepath"
)

func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "mindcheck")
	}
	return filepath.Join(home, ".config", "mindcheck")
}

// ConfigFilePath prefers a mindcheck.toml next to the binary.
func ConfigFilePath() string {
	exe, err := os.Executable()
	if err == nil {
		adjacent := filepath.Join(filepath.Dir(exe), "mindcheck.toml")
		if _, err := os.Stat(adjacent); err == nil {
			return adjacent
		}
	}
	return filepath.Join(ConfigDir(), "mindcheck.toml")
}

func SessionFilePath() string {
	return filepath.Join(ConfigDir(), "session.json")
}

func LogFilePath() string {
	return filepath.Join(ConfigDir(), "mindcheck.log")
}
