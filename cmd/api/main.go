package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-console/internal/config"
	"call-console/internal/credentials"
	"call-console/internal/httpapi"
	"call-console/internal/quickcall"
	"call-console/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	injector := setupDI(&cfg, log)

	h, err := do.Invoke[httpapi.Handlers](injector)
	if err != nil {
		log.Error("dependency wiring failed", "err", err)
		os.Exit(1)
	}
	tokens := do.MustInvoke[credentials.Store](injector)
	controller := do.MustInvoke[*quickcall.Controller](injector)

	if cfg.UsesPostgres() {
		db := do.MustInvoke[*sql.DB](injector)
		defer db.Close()
	}
	if cfg.UsesRedis() {
		rdb := do.MustInvoke[*redis.Client](injector)
		defer rdb.Close()
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           newRouter(&cfg, log, h, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// No WriteTimeout: the quick-call stream is a long-lived websocket.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("console listening",
			"addr", srv.Addr,
			"env", cfg.App.Env,
			"orchestrator", cfg.Orchestrator.BaseURL,
			"redis", cfg.UsesRedis(),
			"postgres", cfg.UsesPostgres(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Closing the controller first ends open streams and the poll loop.
	controller.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
