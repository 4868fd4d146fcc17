package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MultiplierSentinel/internal/calculator"
	"MultiplierSentinel/internal/config"
	"MultiplierSentinel/internal/console"
	"MultiplierSentinel/internal/notifier"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/scheduler"
	"MultiplierSentinel/internal/session"
	"MultiplierSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MultiplierSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init engine
	var projector calculator.Projector
	if cfg.TrendEnabled() {
		projector = calculator.NewLinearProjector()
	} else {
		log.Println("[INFO] trend projection disabled, forecasts use the weighted mean")
	}
	engine := strategy.NewEngine(projector)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(session.NewManager(), engine, rec, scheduler.Options{
		IdleTTL:      cfg.Session.IdleTTL,
		HistoryLimit: cfg.Session.HistoryLimit,
		ChartWindow:  cfg.Session.ChartWindow,
	})
	if err := sched.RegisterAll(cfg.Schedule.SweepCron, cfg.Schedule.StatsCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start the front end
	if cfg.Telegram.BotToken != "" {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)
		go tn.StartPolling(ctx, cfg.Telegram.AllowedChats, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	} else {
		con := console.New(os.Stdin, os.Stdout)
		go func() {
			if err := con.Run(ctx, sched.HandleCommand); err != nil && ctx.Err() == nil {
				log.Printf("[ERROR] console: %v", err)
			}
			cancel()
		}()
		log.Printf("[INFO] console session %s started, type /help for commands", con.SessionKey)
	}

	log.Println("[INFO] MultiplierSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or end of console input
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	cancel()
	log.Println("[INFO] MultiplierSentinel stopped")
}
