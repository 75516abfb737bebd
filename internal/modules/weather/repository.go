package weather

import (
	"fmt"
	"maps"
	"strings"

	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/queue"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

// Path table, indexed by pathIndex.
var urlPaths = []string{
	"/getdayimageforphone",
}

const PathDayImage = 0

// Submitter is the executor as the repository sees it.
type Submitter interface {
	Submit(spec RequestSpec, deliver func(result.Result[ImagePayload])) (*queue.Handle, error)
}

// Poster re-enters the controlling context.
type Poster interface {
	Post(fn func()) error
}

type Continuation func(result.Result[ImagePayload])

type GraphRepository struct{}

func NewGraphRepository() *GraphRepository {
	return &GraphRepository{}
}

func RequestPath(pathIndex int) (string, error) {
	if pathIndex < 0 || pathIndex >= len(urlPaths) {
		return "", fmt.Errorf("%w: %d", ErrPathIndex, pathIndex)
	}
	return urlPaths[pathIndex], nil
}

// NewRequestSpec validates its inputs and copies headers.
func NewRequestSpec(pathIndex int, baseURL string, params PathParams, headers map[string]string) (RequestSpec, error) {
	path, err := RequestPath(pathIndex)
	if err != nil {
		return RequestSpec{}, err
	}
	if strings.TrimSpace(baseURL) == "" {
		return RequestSpec{}, fmt.Errorf("%w: empty base url", ErrInvalidParams)
	}
	if err := params.validate(); err != nil {
		return RequestSpec{}, err
	}
	h := maps.Clone(headers)
	if h == nil {
		h = map[string]string{}
	}
	return RequestSpec{
		baseURL:   baseURL,
		pathIndex: pathIndex,
		path:      path,
		params:    params,
		headers:   h,
	}, nil
}

// MakeGetRequest builds the spec and submits it. A bad spec fails here, before
// any work starts. Once the worker has the Result, continuation runs through handler.
func (g *GraphRepository) MakeGetRequest(
	pathIndex int, baseURL string, params PathParams, headers map[string]string,
	executor Submitter, handler Poster, continuation Continuation,
) (*queue.Handle, error) {
	spec, err := NewRequestSpec(pathIndex, baseURL, params, headers)
	if err != nil {
		return nil, err
	}
	return executor.Submit(spec, func(r result.Result[ImagePayload]) {
		if err := handler.Post(func() { continuation(r) }); err != nil {
			logs.Logger.Debug().Err(err).
				Str("device", params.Device).
				Str("date", params.Date).
				Str("result", r.Kind().String()).
				Msg("result dropped, handler gone")
		}
	})
}

// GetDayImage asks for the day image of req.Device on req.Date rendered at req.Size.
func (g *GraphRepository) GetDayImage(
	req DayImageRequest, baseURL string, headers map[string]string,
	executor Submitter, handler Poster, continuation Continuation,
) (*queue.Handle, error) {
	if !req.Size.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrImageSize, req.Size)
	}
	h := maps.Clone(headers)
	if h == nil {
		h = map[string]string{}
	}
	for k := range h {
		if strings.EqualFold(k, ImageSizeHeader) {
			delete(h, k)
		}
	}
	h[ImageSizeHeader] = req.Size.String()
	params := PathParams{Device: req.Device, Date: req.Date}
	return g.MakeGetRequest(PathDayImage, baseURL, params, h, executor, handler, continuation)
}
