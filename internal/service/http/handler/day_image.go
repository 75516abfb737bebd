package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/weather-viewer/internal/app"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/model"
	"github.com/reusedev/weather-viewer/internal/modules/queue"
	"github.com/reusedev/weather-viewer/internal/modules/result"
	"github.com/reusedev/weather-viewer/internal/modules/weather"
	"github.com/reusedev/weather-viewer/internal/service/http/handler/request"
	"github.com/reusedev/weather-viewer/internal/service/http/handler/response"
	"github.com/reusedev/weather-viewer/tools"
)

type Fetcher interface {
	RequestDayImage(req weather.DayImageRequest, onDone func(app.Outcome)) (*queue.Handle, error)
}

type HistoryReader interface {
	Recent(ctx context.Context, device string, limit int) ([]model.FetchHistory, error)
}

type Handler struct {
	fetcher Fetcher
	history HistoryReader
}

// New takes a nil history when fetch history is disabled.
func New(fetcher Fetcher, history HistoryReader) *Handler {
	return &Handler{fetcher: fetcher, history: history}
}

func (h *Handler) DayImage(c *gin.Context) {
	var req request.DayImage
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	req.FullWithDefault()
	dayReq, err := req.ToRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}

	done := make(chan app.Outcome, 1)
	handle, err := h.fetcher.RequestDayImage(dayReq, func(o app.Outcome) { done <- o })
	switch {
	case err == nil:
	case errors.Is(err, weather.ErrInvalidParams), errors.Is(err, weather.ErrImageSize):
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrShutdown):
		c.JSON(http.StatusServiceUnavailable, response.Busy)
		return
	default:
		logs.Logger.Error().Err(err).Msg("submit day image request")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}

	var out app.Outcome
	select {
	case out = <-done:
	case <-handle.Done():
		if handle.Abandoned() {
			c.JSON(http.StatusServiceUnavailable, response.Busy)
			return
		}
		// delivered to the loop, the continuation follows
		select {
		case out = <-done:
		case <-c.Request.Context().Done():
			return
		}
	case <-c.Request.Context().Done():
		return
	}
	out.Result.Match(
		func(p weather.ImagePayload) {
			if p.RecordCount == 0 {
				c.Status(http.StatusNoContent)
				return
			}
			c.Header("X-Record-Count", strconv.Itoa(p.RecordCount))
			c.Data(http.StatusOK, tools.DetectImageType(p.ImageBytes).ContentType(), p.ImageBytes)
		},
		func(s result.ResponseStatus) {
			c.JSON(http.StatusNotFound, response.ServerWarning(s))
		},
		func(err error) {
			c.JSON(http.StatusBadGateway, response.UpstreamError)
		},
	)
}

func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, response.ParamErrorWithMessage("fetch history is disabled"))
		return
	}
	var req request.History
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	rows, err := h.history.Recent(c.Request.Context(), req.Device, req.Limit)
	if err != nil {
		logs.Logger.Error().Err(err).Str("device", req.Device).Msg("query fetch history")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(rows))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.SuccessWithData("ok"))
}
