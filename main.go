package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pathakanu/healthAI/internal/api"
	"github.com/pathakanu/healthAI/internal/config"
	"github.com/pathakanu/healthAI/internal/database"
	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/pathakanu/healthAI/internal/kvstore"
	"github.com/pathakanu/healthAI/internal/logger"
	"github.com/pathakanu/healthAI/internal/metrics"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/pathakanu/healthAI/internal/openai"
	"github.com/pathakanu/healthAI/internal/reminder"
	"github.com/pathakanu/healthAI/internal/twilio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatal("logger init failed", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("config: invalid", "err", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	kv, db, err := openStorage(cfg, l)
	if err != nil {
		l.Fatal("storage init failed", "err", err)
	}

	store := reminder.NewStore(kv, l, reminder.WithMetrics(m))
	if err := store.Load(context.Background()); err != nil {
		l.Warn("reminders: starting empty", "err", err)
	}
	l.Info("reminders: loaded", "count", len(store.List()))

	feed := notify.NewFeed(0)
	dispatcher := notify.NewDispatcher(l)
	dispatcher.AddBanner(feed)
	dispatcher.AddSink(notify.NewLogSink(l))
	if cfg.TwilioEnabled() {
		dispatcher.AddSink(twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, cfg.NotifyWhatsAppTo, l))
		l.Info("notify: whatsapp enabled", "to", cfg.NotifyWhatsAppTo)
	}

	scheduler := reminder.NewScheduler(store, dispatcher, cfg.ReminderSchedule, cfg.LocalTimezone, m, l)
	if err := scheduler.Start(); err != nil {
		l.Fatal("scheduler start", "err", err)
	}

	analyzer := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !analyzer.Enabled() {
		l.Warn("openai: OPENAI_API_KEY not set, symptom analysis disabled")
	}

	router := api.NewRouter(api.Deps{
		Reminders: store,
		Analyzer:  analyzer,
		Doctors:   doctor.NewDirectory(cfg.DoctorCacheTTL, m, l),
		Announcer: dispatcher,
		Feed:      feed,
		Metrics:   m,
		Gatherer:  reg,
		StaticDir: cfg.StaticDir,
		Logger:    l,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server error", "err", err)
		}
	}()

	waitForShutdown(server, scheduler, db, l)
}

// openStorage returns the key-value backend selected by STORAGE_BACKEND. db is
// nil for the file backend.
func openStorage(cfg *config.Config, l *log.Logger) (kvstore.Store, *gorm.DB, error) {
	if cfg.StorageBackend == config.StorageFile {
		l.Info("storage: using file", "path", cfg.StorageFile)
		return kvstore.NewFileStore(cfg.StorageFile), nil, nil
	}

	db, err := database.New(cfg.DatabaseURL, cfg.SQLitePath, l)
	if err != nil {
		return nil, nil, err
	}
	return kvstore.NewGormStore(db), db, nil
}

func waitForShutdown(server *http.Server, scheduler *reminder.Scheduler, db *gorm.DB, l *log.Logger) {
	stopCtx := make(chan os.Signal, 1)
	signal.Notify(stopCtx, syscall.SIGINT, syscall.SIGTERM)
	<-stopCtx
	l.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Error("server shutdown error", "err", err)
	}
	scheduler.Stop()
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
