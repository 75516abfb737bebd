package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/reusedev/weather-viewer/internal/modules/history"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/model"
	"github.com/reusedev/weather-viewer/internal/modules/queue"
	"github.com/reusedev/weather-viewer/internal/modules/result"
	"github.com/reusedev/weather-viewer/internal/modules/storage"
	"github.com/reusedev/weather-viewer/internal/modules/storage/local"
	"github.com/reusedev/weather-viewer/internal/modules/weather"
	"github.com/reusedev/weather-viewer/tools"
)

// Outcome is what a caller of RequestDayImage gets back, on the controlling goroutine.
type Outcome struct {
	Request weather.DayImageRequest
	Result  result.Result[weather.ImagePayload]
	// Path is the saved image, empty when nothing was written.
	Path string
	// ArchiveKey is the object key of the archived copy, empty when not archived.
	ArchiveKey string
}

// RequestDayImage submits the fetch and returns at once. The result is handled
// on the goroutine running a.Handler.Loop: saved, archived, recorded, then
// passed to onDone when it is not nil.
func (a *App) RequestDayImage(req weather.DayImageRequest, onDone func(Outcome)) (*queue.Handle, error) {
	submittedAt := time.Now()
	handleID := make(chan string, 1)
	h, err := a.Repository.GetDayImage(req, a.baseURL, a.info.RequestHeaders(), a.Executor, a.Handler,
		func(r result.Result[weather.ImagePayload]) {
			out := a.handleResult(req, r)
			a.record(<-handleID, out, time.Since(submittedAt))
			if onDone != nil {
				onDone(out)
			}
		})
	if err != nil {
		return nil, err
	}
	handleID <- h.ID.String()
	return h, nil
}

func (a *App) handleResult(req weather.DayImageRequest, r result.Result[weather.ImagePayload]) Outcome {
	out := Outcome{Request: req, Result: r}
	r.Match(
		func(p weather.ImagePayload) {
			logs.Logger.Debug().
				Str("device", req.Device).
				Int("rec_count", p.RecordCount).
				Str("image_size", humanize.Bytes(uint64(len(p.ImageBytes)))).
				Msg("day image received")
			if p.RecordCount == 0 {
				logs.Logger.Info().Str("device", req.Device).Str("date", req.Date).Msg("no weather data for device")
				return
			}
			out.Path, out.ArchiveKey = a.persist(req, p.ImageBytes)
		},
		func(s result.ResponseStatus) {
			logs.Logger.Warn().Str("device", req.Device).Str("date", req.Date).Stringer("status", s).Msg("server warning")
		},
		func(err error) {
			logs.Logger.Error().Err(err).Str("device", req.Device).Str("date", req.Date).Msg("day image request error")
		},
	)
	return out
}

// persist writes the image and its extras. Failures are logged and swallowed:
// the result has already been delivered. Returns the saved path and archive key,
// each empty when that step did not succeed.
func (a *App) persist(req weather.DayImageRequest, img []byte) (path, key string) {
	path = local.DayImagePath(a.cfg.OutputDir, req.Date)
	if err := local.SaveFile(bytes.NewReader(img), path); err != nil {
		logs.Logger.Error().Err(fmt.Errorf("%w: %w", weather.ErrPersistence, err)).Str("path", path).Msg("save day image")
		return "", ""
	}
	logs.Logger.Info().Str("path", path).Str("size", humanize.Bytes(uint64(len(img)))).Msg("day image saved")

	if a.cfg.ThumbnailRatio > 0 {
		a.saveThumbnail(path, img)
	}
	if a.archiver != nil {
		key = a.archive(req, img)
	}
	return path, key
}

func (a *App) saveThumbnail(path string, img []byte) {
	thumb, err := tools.Thumbnail(bytes.NewReader(img), a.cfg.ThumbnailRatio, imaging.PNG)
	if err == nil {
		err = local.SaveFile(thumb, local.ThumbnailPath(path))
	}
	if err != nil {
		logs.Logger.Error().Err(fmt.Errorf("%w: %w", weather.ErrPersistence, err)).Str("path", path).Msg("save thumbnail")
	}
}

func (a *App) archive(req weather.DayImageRequest, img []byte) string {
	imageType := tools.DetectImageType(img)
	ext := imageType.String()
	if imageType == tools.ImageTypeUnknown {
		ext = "bin"
	}
	key := storage.ObjectKey{Device: req.Device, Date: req.Date, Extension: ext}.Key()
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPTimeoutDuration())
	defer cancel()
	if err := a.archiver.Put(ctx, key, bytes.NewReader(img), imageType.ContentType()); err != nil {
		logs.Logger.Error().Err(fmt.Errorf("%w: %w", weather.ErrPersistence, err)).Str("key", key).Msg("archive day image")
		return ""
	}
	logs.Logger.Info().Str("key", key).Msg("day image archived")
	return key
}

func (a *App) record(handleID string, out Outcome, d time.Duration) {
	if a.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.history.Record(ctx, historyEntry(handleID, out, d)); err != nil {
		logs.Logger.Error().Err(fmt.Errorf("%w: %w", weather.ErrPersistence, err)).Msg("record fetch history")
	}
}

func historyEntry(handleID string, out Outcome, d time.Duration) history.Entry {
	e := history.Entry{
		HandleId:   handleID,
		Device:     out.Request.Device,
		Date:       out.Request.Date,
		Size:       out.Request.Size.String(),
		LocalPath:  out.Path,
		ArchiveKey: out.ArchiveKey,
		Duration:   d,
	}
	out.Result.Match(
		func(p weather.ImagePayload) {
			e.Outcome = model.FetchOutcomeSuccess
			e.RecordCount = p.RecordCount
			e.ImageBytes = len(p.ImageBytes)
		},
		func(s result.ResponseStatus) {
			e.Outcome = model.FetchOutcomeWarning
			e.StatusCode = s.Code
			e.Message = s.Message
		},
		func(err error) {
			e.Outcome = model.FetchOutcomeError
			e.Message = err.Error()
		},
	)
	return e
}
