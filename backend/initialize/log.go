package initialize

import (
	"feedback-board/backend/config"
	"feedback-board/backend/global"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	// console logger until the configuration is known
	global.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// InitLogger builds the process logger from cfg and installs it globally.
func InitLogger(cfg config.Log) zerolog.Logger {
	logger := NewLogger(cfg, os.Stdout)
	global.Logger = logger
	zerolog.DefaultContextLogger = &global.Logger
	return logger
}

func NewLogger(cfg config.Log, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// SetLevel changes the level of every logger in the process.
func SetLevel(level string) { zerolog.SetGlobalLevel(parseLevel(level)) }

func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
