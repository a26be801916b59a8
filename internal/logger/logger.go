package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// levelTags maps zerolog level strings to colored console tags.
var levelTags = map[string]string{
	"trace": "\x1b[35mTRC\x1b[0m",
	"debug": "\x1b[33mDBG\x1b[0m",
	"info":  "\x1b[32mINF\x1b[0m",
	"warn":  "\x1b[31mWRN\x1b[0m",
	"error": "\x1b[31mERR\x1b[0m",
	"fatal": "\x1b[31mFTL\x1b[0m",
	"panic": "\x1b[31mPNC\x1b[0m",
}

// Get returns the singleton logger instance, initializing it on first call.
func Get() *zerolog.Logger {
	once.Do(func() {
		logger = newLogger()
	})
	return logger
}

// newLogger picks the output format based on the ENV environment variable
// and the log level based on LOG_LEVEL. It reads the process environment
// directly so initialization works in every runtime, including Workers.
func newLogger() *zerolog.Logger {
	level := zerolog.InfoLevel
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(levelStr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL %q; defaulting to 'info'\n", levelStr)
		} else {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	switch os.Getenv("ENV") {
	case "production", "prod":
		return newProduction()
	default:
		return newDevelopment()
	}
}

// newDevelopment creates a console logger with colored level tags.
func newDevelopment() *zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
		FormatLevel: func(i interface{}) string {
			ll, ok := i.(string)
			if !ok {
				return strings.ToUpper(fmt.Sprintf("%s", i))
			}
			if tag, ok := levelTags[ll]; ok {
				return tag
			}
			return strings.ToUpper(ll)
		},
	}

	zl := zerolog.New(output).With().Timestamp().Logger()
	return &zl
}

// newProduction creates a JSON logger with UNIX timestamps.
func newProduction() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &zl
}
