package app

import (
	"context"
	"fmt"
	"time"

	"github.com/reusedev/weather-viewer/config"
	"github.com/reusedev/weather-viewer/internal/components/mysql"
	"github.com/reusedev/weather-viewer/internal/modules/dispatch"
	"github.com/reusedev/weather-viewer/internal/modules/history"
	"github.com/reusedev/weather-viewer/internal/modules/http_client"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/queue"
	"github.com/reusedev/weather-viewer/internal/modules/storage"
	"github.com/reusedev/weather-viewer/internal/modules/storage/ali"
	"github.com/reusedev/weather-viewer/internal/modules/storage/minio"
	"github.com/reusedev/weather-viewer/internal/modules/weather"
)

type Executor = queue.Executor[weather.RequestSpec, weather.ImagePayload]

// App owns everything that lives as long as the process: the worker pool, the
// controlling handler and the collaborators the continuation writes to.
type App struct {
	cfg     *config.Config
	info    *config.RequestInfo
	baseURL string

	Executor   *Executor
	Handler    *dispatch.Handler
	Repository *weather.GraphRepository

	archiver storage.Archiver
	history  *history.Recorder
}

type Option func(*options)

type options struct {
	transport weather.Transport
	archiver  storage.Archiver
	history   *history.Recorder
}

func WithTransport(t weather.Transport) Option {
	return func(o *options) { o.transport = t }
}

func WithArchiver(a storage.Archiver) Option {
	return func(o *options) { o.archiver = a }
}

func WithHistory(r *history.Recorder) Option {
	return func(o *options) { o.history = r }
}

// New wires the pipeline. Collaborators not passed as options are built from cfg.
func New(ctx context.Context, cfg *config.Config, info *config.RequestInfo, opts ...Option) (*App, error) {
	baseURL, err := info.URL(cfg.URLKey)
	if err != nil {
		return nil, err
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.transport == nil {
		o.transport = http_client.NewWithTimeout(cfg.HTTPTimeoutDuration())
	}
	if o.archiver == nil {
		if o.archiver, err = newArchiver(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if o.history == nil && cfg.MySQL.Enabled {
		db, err := mysql.Open(cfg.MySQL)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		o.history = history.NewRecorder(db)
		if err := o.history.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate fetch_history: %w", err)
		}
	}

	a := &App{
		cfg:        cfg,
		info:       info,
		baseURL:    baseURL,
		Handler:    dispatch.NewHandler(),
		Repository: weather.NewGraphRepository(),
		archiver:   o.archiver,
		history:    o.history,
	}
	a.Executor = queue.New[weather.RequestSpec, weather.ImagePayload](ctx, cfg.WorkerPoolSize, cfg.QueueSize, weather.NewRequester(o.transport))
	logs.Logger.Info().
		Str("base_url", baseURL).
		Int("workers", cfg.WorkerPoolSize).
		Str("storage", cfg.StorageSupplier).
		Bool("history", a.history != nil).
		Msg("app ready")
	return a, nil
}

func newArchiver(ctx context.Context, cfg *config.Config) (storage.Archiver, error) {
	switch cfg.StorageSupplier {
	case config.StorageAliOss:
		return ali.New(cfg.AliOss)
	case config.StorageMinIO:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return minio.New(ctx, cfg.MinIO)
	default:
		return nil, nil
	}
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Shutdown stops taking work, abandons queued fetches and stops the handler.
// A fetch already running finishes but its continuation is dropped.
func (a *App) Shutdown() {
	abandoned := a.Executor.Shutdown()
	a.Handler.Quit()
	a.Executor.Wait()
	logs.Logger.Info().Int("abandoned", len(abandoned)).Msg("app shut down")
}

// History is nil when fetch history is disabled.
func (a *App) History() *history.Recorder {
	return a.history
}
