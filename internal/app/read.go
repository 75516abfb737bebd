package app

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/result"
	"github.com/reusedev/weather-viewer/internal/modules/storage/local"
	"github.com/reusedev/weather-viewer/internal/modules/weather"
	"github.com/reusedev/weather-viewer/tools"
)

var ErrInputNotFound = errors.New("saved response not found")

// ReadSavedResponse decodes a response body saved as jsonDir/name and writes
// its image to outputDir with the .json suffix swapped for .png. It returns the
// written path, or "" when the response held no image.
func ReadSavedResponse(jsonDir, outputDir, name string) (string, error) {
	data, err := tools.ReadFile(filepath.Join(jsonDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}
		return "", err
	}

	var saved string
	var outErr error
	weather.DecodeDayImage(http.StatusOK, data).Match(
		func(p weather.ImagePayload) {
			if p.RecordCount == 0 {
				logs.Logger.Info().Str("json", name).Msg("no weather data")
				return
			}
			path := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(name), ".json")+".png")
			if err := local.SaveFile(bytes.NewReader(p.ImageBytes), path); err != nil {
				logs.Logger.Error().Err(fmt.Errorf("%w: %w", weather.ErrPersistence, err)).Str("path", path).Msg("save day image")
				return
			}
			logs.Logger.Info().Str("path", path).Msg("day image saved")
			saved = path
		},
		func(s result.ResponseStatus) {
			outErr = fmt.Errorf("saved response is a warning: %s", s)
		},
		func(err error) {
			outErr = err
		},
	)
	return saved, outErr
}

// ReadSavedResponse reads from the configured json_dir into output_dir.
func (a *App) ReadSavedResponse(name string) (string, error) {
	return ReadSavedResponse(a.cfg.JSONDir, a.cfg.OutputDir, name)
}
