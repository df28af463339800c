package log

import (
	"time"

	"github.com/rs/zerolog"

	logAdapter "github.com/bft-labs/ballchaser/internal/adapters/log"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// Logger provides structured logging capabilities.
type Logger = ports.Logger

// Field represents a key-value pair for structured logging.
type Field = ports.Field

// NewZerologLogger wraps an existing zerolog.Logger.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return logAdapter.NewZerologAdapterWithLogger(logger)
}

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger {
	return logAdapter.NewNoopLogger()
}

func String(key, value string) Field                 { return ports.String(key, value) }
func Int(key string, value int) Field                { return ports.Int(key, value) }
func Uint64(key string, value uint64) Field          { return ports.Uint64(key, value) }
func Float64(key string, value float64) Field        { return ports.Float64(key, value) }
func Bool(key string, value bool) Field              { return ports.Bool(key, value) }
func Duration(key string, value time.Duration) Field { return ports.Duration(key, value) }
func Err(err error) Field                            { return ports.Err(err) }
func Any(key string, value interface{}) Field        { return ports.Any(key, value) }
