package logs

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/reusedev/weather-viewer/config"
	"github.com/rs/zerolog"
)

const service = "weather-viewer"

// Logger writes to stderr until InitLogger swaps in the configured writers.
var (
	Logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

func InitLogger() {
	cfg := config.GConfig

	level := parseLogLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize, // MB
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge, // days
		Compress:   true,
	}
	writers = append(writers, logFile)

	// the CLI is run by hand, so keep the console readable at debug
	if level <= zerolog.DebugLevel {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	}

	Logger = newLogger(io.MultiWriter(writers...))
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
