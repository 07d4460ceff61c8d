package config

import "os"

// LogFile is where logs go. The terminal is occupied by the game
// itself, so logging is file-only by default.
func LogFile() string {
	if path, ok := os.LookupEnv("MINESWEEPER_LOG_FILE"); ok && path != "" {
		return path
	}
	return "minesweeper.log"
}
