// Package commands provides CLI command implementations.
package commands

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log is shared by every command; ConfigureLogging sets it up once the
// environment has been loaded.
var log = logrus.New()

// ConfigureLogging applies LOG_LEVEL from the environment (default info).
func ConfigureLogging() {
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

// dbPath resolves the run-database path: an explicit flag wins, then the
// NEURAL_RPS_DB environment variable. Empty disables run recording.
func dbPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("NEURAL_RPS_DB")
}
