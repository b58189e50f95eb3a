package main

import (
	"Fanboard/internal/api/config"
	"Fanboard/internal/pkg/cron"
	"Fanboard/internal/pkg/database"
	"Fanboard/internal/pkg/logger"
	"Fanboard/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Error("Fanboard exited with error", "err", err)
		os.Exit(1)
	}
	log.Info("Fanboard exited successfully.")
}

func run() error {
	if err := config.LoadConfig(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := config.Cfg
	logger.InitLogger()

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return fmt.Errorf("open %s database: %w", dbCfg.Driver, err)
	}
	defer closeDB(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis 与 MinIO 在此按配置初始化
	app, err := wire.BuildApplication(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	if app.Redis != nil {
		defer func() { _ = app.Redis.Close() }()
	}

	if err = cron.InitCron(app.CronMgr); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr, "club", cfg.Scraper.ClubID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...", "cause", context.Cause(gctx))

		// 先停调度，等待进行中的抓取写完快照
		app.CronMgr.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
