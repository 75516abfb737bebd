package weather

import (
	"encoding/base64"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the wire body. Only one member is meaningful per response and the
// HTTP status decides which. Pointers tell a missing field from a zero one.
type envelope struct {
	Status *envelopeStatus `json:"status"`
	Data   *envelopeData   `json:"data"`
}

type envelopeStatus struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
}

type envelopeData struct {
	RecCount    *int    `json:"recCount"`
	ImageBase64 *string `json:"imageBase64"`
}

func succeeded(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// ParseResponse classifies one exchange. transportErr is set when no status
// was received at all.
func ParseResponse(statusCode int, body []byte, transportErr error) result.Result[ImagePayload] {
	if transportErr != nil {
		return result.Error[ImagePayload](fmt.Errorf("%w: %w", ErrTransport, transportErr))
	}
	return DecodeDayImage(statusCode, body)
}

func DecodeDayImage(statusCode int, body []byte) result.Result[ImagePayload] {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return result.Error[ImagePayload](fmt.Errorf("%w: status %d: %v", ErrEnvelope, statusCode, err))
	}
	if !succeeded(statusCode) {
		status, err := env.status()
		if err != nil {
			return result.Error[ImagePayload](fmt.Errorf("%w: status %d: %v", ErrEnvelope, statusCode, err))
		}
		return result.Warning[ImagePayload](status)
	}
	payload, err := env.payload()
	if err != nil {
		return result.Error[ImagePayload](fmt.Errorf("%w: %v", ErrEnvelope, err))
	}
	return result.Success(payload)
}

func (e envelope) status() (result.ResponseStatus, error) {
	if e.Status == nil {
		return result.ResponseStatus{}, fmt.Errorf("missing \"status\"")
	}
	if e.Status.Code == nil {
		return result.ResponseStatus{}, fmt.Errorf("missing \"status.code\"")
	}
	return result.ResponseStatus{Code: *e.Status.Code, Message: e.Status.Message}, nil
}

func (e envelope) payload() (ImagePayload, error) {
	if e.Data == nil {
		return ImagePayload{}, fmt.Errorf("missing \"data\"")
	}
	if e.Data.RecCount == nil {
		return ImagePayload{}, fmt.Errorf("missing \"data.recCount\"")
	}
	if *e.Data.RecCount < 0 {
		return ImagePayload{}, fmt.Errorf("negative \"data.recCount\" %d", *e.Data.RecCount)
	}
	if e.Data.ImageBase64 == nil {
		return ImagePayload{}, fmt.Errorf("missing \"data.imageBase64\"")
	}
	b, err := base64.StdEncoding.DecodeString(*e.Data.ImageBase64)
	if err != nil {
		return ImagePayload{}, fmt.Errorf("decode \"data.imageBase64\": %w", err)
	}
	return ImagePayload{RecordCount: *e.Data.RecCount, ImageBytes: b}, nil
}
