package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/service/http/handler"
	"github.com/reusedev/weather-viewer/internal/service/http/middleware"
)

func NewEngine(h *handler.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	initRouter(e, h)
	return e
}

// Serve blocks until ctx is done, then drains in-flight requests.
func Serve(ctx context.Context, port string, h *handler.Handler) error {
	srv := &http.Server{
		Addr:              port,
		Handler:           NewEngine(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logs.Logger.Info().Str("addr", port).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func initRouter(e *gin.Engine, h *handler.Handler) {
	e.Use(gin.Recovery())
	e.Use(middleware.RequestLogger())
	e.GET("/health", handler.Health)
	v1 := e.Group("/v1")
	{
		v1.GET("/day-image", h.DayImage)
		v1.GET("/history", h.History)
	}
}
