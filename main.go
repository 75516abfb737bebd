package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reusedev/weather-viewer/config"
	"github.com/reusedev/weather-viewer/internal/app"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/scheduler"
	"github.com/reusedev/weather-viewer/internal/modules/weather"
	"github.com/reusedev/weather-viewer/internal/service/http"
	"github.com/reusedev/weather-viewer/internal/service/http/handler"
	"github.com/reusedev/weather-viewer/tools"
	"golang.org/x/sync/errgroup"
)

var (
	httpPort   string
	configPath string
	serve      bool
	watch      bool
	readName   string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":8080", "listen http port (with -serve)")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
	flag.BoolVar(&serve, "serve", false, "serve day images over http")
	flag.BoolVar(&watch, "watch", false, "fetch today's image every watch_interval: <device> <WxHxD>")
	flag.StringVar(&readName, "read", "", "decode a saved response <name>.json from json_dir instead of fetching")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <device> <YYYY-MM-DD> <WxHxD>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if readName != "" {
		// decoding a saved response needs no config file
		config.InitOrDefault(configPath)
		logs.InitLogger()
		os.Exit(runRead())
	}
	config.Init(configPath)
	logs.InitLogger()

	info := tools.PanicOnError(config.LoadRequestInfo())
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	a := tools.PanicOnError(app.New(ctx, config.GConfig, info))

	var err error
	switch {
	case serve:
		err = runServe(ctx, a)
	case watch:
		err = runWatch(ctx, a, flag.Args())
	default:
		err = runOnce(ctx, a, flag.Args())
	}
	a.Shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		logs.Logger.Error().Err(err).Msg("weather-viewer stopped")
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
	}
}

var errUsage = errors.New("bad arguments")

func parseRequest(args []string) (weather.DayImageRequest, error) {
	if len(args) != 3 {
		return weather.DayImageRequest{}, fmt.Errorf("%w: want <device> <YYYY-MM-DD> <WxHxD>, got %d args", errUsage, len(args))
	}
	size, err := weather.ParseImageSize(args[2])
	if err != nil {
		return weather.DayImageRequest{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	return weather.DayImageRequest{Device: args[0], Date: args[1], Size: size}, nil
}

// runOnce fetches one image and returns after its continuation ran.
func runOnce(ctx context.Context, a *app.App, args []string) error {
	req, err := parseRequest(args)
	if err != nil {
		return err
	}
	if _, err := a.RequestDayImage(req, func(app.Outcome) { a.Handler.Quit() }); err != nil {
		if errors.Is(err, weather.ErrInvalidParams) {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return err
	}
	// the main goroutine is the controlling context
	return a.Handler.Loop(ctx)
}

func runWatch(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: want <device> <WxHxD> with -watch", errUsage)
	}
	req, err := parseRequest([]string{args[0], time.Now().Format(weather.DateLayout), args[1]})
	if err != nil {
		return err
	}
	sched := scheduler.New(a.Config().WatchIntervalDuration(), func(done func()) error {
		r := req
		r.Date = time.Now().Format(weather.DateLayout)
		_, err := a.RequestDayImage(r, func(app.Outcome) { done() })
		return err
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()
	return a.Handler.Loop(ctx)
}

func runServe(ctx context.Context, a *app.App) error {
	var hist handler.HistoryReader
	if r := a.History(); r != nil {
		hist = r
	}
	// the loop outlives the server so in-flight requests still get their results
	loopCtx, stopLoop := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.Handler.Loop(loopCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer stopLoop()
		return http.Serve(gctx, httpPort, handler.New(a, hist))
	})
	return g.Wait()
}

// runRead exits 1 only when the saved response cannot be found.
func runRead() int {
	cfg := config.GConfig
	path, err := app.ReadSavedResponse(cfg.JSONDir, cfg.OutputDir, readName)
	switch {
	case errors.Is(err, app.ErrInputNotFound):
		fmt.Fprintln(os.Stderr, err)
		return 1
	case err != nil:
		logs.Logger.Error().Err(err).Str("json", readName).Msg("decode saved response")
	case path == "":
		logs.Logger.Info().Str("json", readName).Msg("saved response held no image")
	}
	return 0
}
