package authstate

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogConfig configures the zerolog backed Logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to the Logger interface
func NewZerologLogger(zl zerolog.Logger) Logger {
	return &zerologLogger{logger: zl.With().Str("component", "auth_state").Logger()}
}

// NewLogger builds a zerolog Logger from config. Format "console" (or
// "pretty") renders human readable lines, anything else emits JSON.
func NewLogger(cfg LogConfig) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := outputWriter(cfg.Output)

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out})
	default:
		zl = zerolog.New(out)
	}

	return NewZerologLogger(zl.Level(level).With().Timestamp().Logger())
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stderr":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func (l *zerologLogger) Debug(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Info(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *zerologLogger) Error(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}
