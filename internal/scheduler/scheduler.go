package scheduler

import (
	"fmt"
	"log"
	"time"

	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/session"
	"MultiplierSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Options tune session housekeeping and report rendering.
type Options struct {
	IdleTTL      time.Duration
	HistoryLimit int
	ChartWindow  int
}

// Scheduler dispatches user commands to sessions and runs cron housekeeping.
type Scheduler struct {
	Cron     *cron.Cron
	Sessions *session.Manager
	Engine   *strategy.Engine
	Recorder recorder.Recorder
	Options  Options
}

// NewScheduler creates a new Scheduler.
func NewScheduler(sessions *session.Manager, engine *strategy.Engine, rec recorder.Recorder, opts Options) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Sessions: sessions,
		Engine:   engine,
		Recorder: rec,
		Options:  opts,
	}
}

// RegisterAll registers the idle-session sweep and the stats job.
func (s *Scheduler) RegisterAll(sweepCron, statsCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	if _, err := s.Cron.AddFunc(statsCron, s.statsTask); err != nil {
		return fmt.Errorf("register stats task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// sweepTask ends sessions idle longer than the configured TTL.
func (s *Scheduler) sweepTask() {
	s.sweep()
}

func (s *Scheduler) sweep() []string {
	evicted := s.Sessions.Evict(s.Options.IdleTTL)
	for _, key := range evicted {
		if err := s.Recorder.RecordSessionEvent(&recorder.SessionEvent{
			SessionKey: key, EventType: "EVICT",
		}); err != nil {
			log.Printf("[ERROR] record session eviction: %v", err)
		}
	}
	if len(evicted) > 0 {
		log.Printf("[INFO] evicted %d idle sessions", len(evicted))
	}
	return evicted
}

func (s *Scheduler) statsTask() {
	log.Printf("[INFO] active sessions: %d", s.Sessions.Len())
}
