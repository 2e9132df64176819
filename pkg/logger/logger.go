package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/bookkeeper/internal/config"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: config.Development,
	Level:       "debug",
}

type LoggerOpts struct {
	Environment config.Environment
	Level       string
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

// Init sets the global logger: JSON on stdout in production, a console writer
// elsewhere.
func Init(opts ...LoggerOpts) {
	o := safe(opts...)

	level, err := zerolog.ParseLevel(o.Level)
	if err != nil || o.Level == "" {
		level = zerolog.InfoLevel
	}

	if o.Environment.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
	}
	log.Logger = log.Logger.Level(level)
	zerolog.DefaultContextLogger = &log.Logger
}

// Logger returns the global logger, for handing to components that take one.
func Logger() *zerolog.Logger {
	return &log.Logger
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
