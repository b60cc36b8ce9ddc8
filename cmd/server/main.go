package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/davichuder/volatility-explorer/internal/collector"
	"github.com/davichuder/volatility-explorer/internal/config"
	"github.com/davichuder/volatility-explorer/internal/recorder"
	"github.com/davichuder/volatility-explorer/internal/server"
	"github.com/davichuder/volatility-explorer/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] volatility-explorer starting...")

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

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "piquette" {
		fetcher = collector.NewPiquetteFetcher()
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

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

	// Init session store and expiry sweep
	store := session.NewStore(time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute)
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Server.SweepCron, func() {
		if n := store.Sweep(); n > 0 {
			log.Printf("[INFO] swept %d expired sessions, %d live", n, store.Len())
		}
	}); err != nil {
		log.Fatalf("[FATAL] register session sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Init HTTP server
	srv := server.New(fetcher, store, rec, server.Defaults{
		Ticker:       cfg.Defaults.Ticker,
		Window:       cfg.Defaults.Window,
		LookbackDays: cfg.Defaults.LookbackDays,
	})
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] volatility-explorer stopped")
}
