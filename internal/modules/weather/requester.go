package weather

import (
	"context"
	"time"

	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

// Requester is the unit of work the executor runs on a worker: one GET, then decode.
type Requester struct {
	transport Transport
}

func NewRequester(transport Transport) *Requester {
	return &Requester{transport: transport}
}

func (r *Requester) Perform(ctx context.Context, spec RequestSpec) result.Result[ImagePayload] {
	reqAt := time.Now()
	statusCode, body, err := r.transport.Get(ctx, spec.URL(), spec.Headers())
	respAt := time.Now()
	if err != nil {
		logs.Logger.Warn().Err(err).
			Str("path", spec.Path()).
			Str("device", spec.params.Device).
			Str("date", spec.params.Date).
			Dur("req_consume_ms", respAt.Sub(reqAt)).
			Msg("day image request failed")
		return ParseResponse(0, nil, err)
	}
	logs.Logger.Info().
		Str("path", spec.Path()).
		Str("device", spec.params.Device).
		Str("date", spec.params.Date).
		Int("status_code", statusCode).
		Int("body_len", len(body)).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("day image request")
	return DecodeDayImage(statusCode, body)
}
