// Package config reads application settings from the environment,
// one concern per file. main loads a .env file first in development,
// so everything here stays plain os.LookupEnv.
package config

import "os"

// PlayerName is the name recorded with wins.
func PlayerName() string {
	if name, ok := os.LookupEnv("MINESWEEPER_PLAYER"); ok && name != "" {
		return name
	}
	return "anonymous"
}

// DefaultDifficulty is the tier the session starts with. The caller
// validates the name so an unknown value can fall back cleanly.
func DefaultDifficulty() (string, bool) {
	return os.LookupEnv("MINESWEEPER_DIFFICULTY")
}
