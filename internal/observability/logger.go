package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger zerolog.Logger
	initOnce     sync.Once
)

// LevelNames lists the level names accepted by SetLevel, lowest first.
var LevelNames = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// InitLogger initializes the global structured logger. Later calls are no-ops.
func InitLogger(level string, pretty bool) {
	initOnce.Do(func() {
		initLogger(os.Stdout, level, pretty)
	})
}

func initLogger(out io.Writer, level string, pretty bool) {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	globalLogger = zerolog.New(out).With().Timestamp().Str("service", "golf-agent").Logger()

	log.Logger = globalLogger
	zerolog.DefaultContextLogger = &globalLogger
}

// GetLogger returns the global logger, initializing it with defaults if needed.
func GetLogger() zerolog.Logger {
	InitLogger("info", false)
	return globalLogger
}

// ParseLevel accepts zerolog names and the DEBUG/INFO/WARNING/ERROR/CRITICAL
// names exposed over the API, case-insensitively.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARNING", "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return zerolog.FatalLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level %q, must be one of %v", level, LevelNames)
}

// SetLevel changes the global level at runtime.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	logger := GetLogger()
	zerolog.SetGlobalLevel(lvl)
	logger.Info().Str("level", LevelName()).Msg("log level changed")
	return nil
}

// LevelName reports the global level using the API names.
func LevelName() string {
	switch zerolog.GlobalLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return "DEBUG"
	case zerolog.WarnLevel:
		return "WARNING"
	case zerolog.ErrorLevel:
		return "ERROR"
	case zerolog.FatalLevel, zerolog.PanicLevel, zerolog.Disabled:
		return "CRITICAL"
	}
	return "INFO"
}

// WithRequestID returns a context carrying a logger tagged with the request
// id. An empty id gets a fresh one.
func WithRequestID(ctx context.Context, requestID string) (context.Context, string) {
	if requestID == "" {
		requestID = NewRequestID()
	}
	l := GetLogger().With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx), requestID
}

func NewRequestID() string {
	return uuid.New().String()
}
