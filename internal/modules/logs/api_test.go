package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusedev/weather-viewer/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLogLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, parseLogLevel("loud"))
}

func TestInitLogger_WritesServiceField(t *testing.T) {
	prevCfg, prevLogger, prevLevel := config.GConfig, Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		config.GConfig, Logger = prevCfg, prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	logFile := filepath.Join(t.TempDir(), "weather-viewer.log")
	config.GConfig = &config.Config{LogLevel: "info", LogFile: logFile, LogMaxSize: 1}
	InitLogger()
	Logger.Info().Str("device", "esp8266_1").Msg("day image saved")

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(b), `"service":"weather-viewer"`)
	require.Contains(t, string(b), `"device":"esp8266_1"`)
}
