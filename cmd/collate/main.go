package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/config"
	"github.com/crimson-sun/collate/internal/engine/merge"
	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/logging"
	"github.com/crimson-sun/collate/internal/pipeline"
	"github.com/crimson-sun/collate/internal/report"
	"github.com/crimson-sun/collate/internal/server"

	// Register source reader implementations.
	_ "github.com/crimson-sun/collate/internal/ingest/csvfile"
	_ "github.com/crimson-sun/collate/internal/ingest/xlsxfile"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	// Build pipeline.
	ing := ingest.New("", log)
	m := merge.New(log)
	rep := report.New(cfg.Report.OutputDir, log)
	pipe := pipeline.New(ing, m, rep, cfg.Report.OutputDir, log)

	srv := server.New(pipe, cfg.Server, log)
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	// Set up graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("collate: starting",
		zap.String("addr", cfg.Server.Addr),
		zap.String("output_dir", cfg.Report.OutputDir),
		zap.Strings("formats", ingest.Extensions()))

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
}
