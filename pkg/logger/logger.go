package logx

import (
	"io"
	"os"

	"github.com/georgemunganga/printa-storefront/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls how Init configures the global logger.
type Options struct {
	Environment core.Environment
	// Output defaults to stderr.
	Output io.Writer
}

// Init configures the global zerolog logger. Production gets levelled JSON,
// everything else a human readable console writer at debug level.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Environment.IsProduction() {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).
		With().Timestamp().Caller().Logger().
		Level(zerolog.DebugLevel)
}

func Debug() *zerolog.Event { return log.Debug() }

func Info() *zerolog.Event { return log.Info() }

func Warn() *zerolog.Event { return log.Warn() }

func Error() *zerolog.Event { return log.Error() }

func Fatal() *zerolog.Event { return log.Fatal() }
