package weather

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/reusedev/weather-viewer/tools"
)

var (
	ErrTransport     = errors.New("transport failure")
	ErrEnvelope      = errors.New("malformed response envelope")
	ErrPersistence   = errors.New("persistence failure")
	ErrPathIndex     = errors.New("path index out of range")
	ErrInvalidParams = errors.New("invalid request parameters")
	ErrImageSize     = errors.New("invalid image size")
)

const (
	ImageSizeHeader = "X-Request-Image-Size"
	DateLayout      = "2006-01-02"
)

// Transport performs one blocking GET. A non-nil error means no status was received.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (statusCode int, body []byte, err error)
}

// ImagePayload is a decoded day image. RecordCount 0 means the sensor had no
// samples for the window; ImageBytes may still hold a placeholder.
type ImagePayload struct {
	RecordCount int
	ImageBytes  []byte
}

type PathParams struct {
	Device string
	Date   string
}

func (p PathParams) validate() error {
	if strings.TrimSpace(p.Device) == "" || strings.Contains(p.Device, "/") {
		return fmt.Errorf("%w: device %q", ErrInvalidParams, p.Device)
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidParams, p.Date)
	}
	return nil
}

// RequestSpec describes one outbound GET. It is built once and never changes.
type RequestSpec struct {
	baseURL   string
	pathIndex int
	path      string
	params    PathParams
	headers   map[string]string
}

func (s RequestSpec) BaseURL() string { return s.baseURL }
func (s RequestSpec) PathIndex() int { return s.pathIndex }
func (s RequestSpec) Path() string { return s.path }
func (s RequestSpec) Params() PathParams { return s.params }

// Headers returns a copy.
func (s RequestSpec) Headers() map[string]string {
	return maps.Clone(s.headers)
}

func (s RequestSpec) URL() string {
	return tools.FullURL(s.baseURL, s.path+tools.PathSegments(s.params.Device, s.params.Date))
}

func (s RequestSpec) String() string {
	return "GET " + s.URL()
}

// ImageSize is the WIDTHxHEIGHTxDENSITY descriptor the server renders to.
type ImageSize struct {
	Width   int
	Height  int
	Density float64
}

func ParseImageSize(s string) (ImageSize, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 3 {
		return ImageSize{}, fmt.Errorf("%w: %q, want WIDTHxHEIGHTxDENSITY", ErrImageSize, s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w <= 0 {
		return ImageSize{}, fmt.Errorf("%w: width %q", ErrImageSize, parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h <= 0 {
		return ImageSize{}, fmt.Errorf("%w: height %q", ErrImageSize, parts[1])
	}
	d, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || !finitePositive(d) {
		return ImageSize{}, fmt.Errorf("%w: density %q", ErrImageSize, parts[2])
	}
	return ImageSize{Width: w, Height: h, Density: d}, nil
}

func (s ImageSize) valid() bool {
	return s.Width > 0 && s.Height > 0 && finitePositive(s.Density)
}

func finitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%dx%s", s.Width, s.Height, strconv.FormatFloat(s.Density, 'f', -1, 64))
}

// DayImageRequest is the logical request: device D on date T at size S.
type DayImageRequest struct {
	Device string
	Date   string
	Size   ImageSize
}
