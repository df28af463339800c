package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
)

// Logger returns the console logger used by the CLI at the given level.
func Logger(level string) zerolog.Logger {
	return logAdapter.NewConsoleLogger(os.Stderr, level)
}
