package scheduler

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/reusedev/weather-viewer/internal/modules/logs"
)

var ErrInterval = errors.New("watch interval must be positive")

// Trigger starts one fetch and must arrange for done to be called once that
// fetch is over, whatever its outcome. When it returns an error it must not call done.
type Trigger func(done func()) error

// Scheduler fires a Trigger on a fixed interval, never with two fetches outstanding.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	trigger   Trigger
	busy      atomic.Bool
}

func New(interval time.Duration, trigger Trigger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		interval:  interval,
		trigger:   trigger,
	}
}

// Start runs the first tick right away, then one per interval.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return ErrInterval
	}
	_, err := s.scheduler.Every(s.interval).Do(s.Tick)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	logs.Logger.Info().Dur("interval", s.interval).Msg("watch scheduler started")
	return nil
}

// Tick fires the trigger unless the previous fetch is still outstanding.
// It reports whether a fetch was started.
func (s *Scheduler) Tick() bool {
	if !s.busy.CompareAndSwap(false, true) {
		logs.Logger.Info().Msg("previous fetch still outstanding, skipping tick")
		return false
	}
	var once atomic.Bool
	done := func() {
		if once.CompareAndSwap(false, true) {
			s.busy.Store(false)
		}
	}
	if err := s.trigger(done); err != nil {
		logs.Logger.Error().Err(err).Msg("watch fetch not started")
		s.busy.Store(false)
		return false
	}
	return true
}

func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
