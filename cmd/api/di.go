package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"call-console/internal/audit"
	"call-console/internal/config"
	"call-console/internal/contacts"
	"call-console/internal/credentials"
	"call-console/internal/drafts"
	"call-console/internal/httpapi"
	"call-console/internal/orchestrator"
	"call-console/internal/quickcall"
	"call-console/internal/reporting"
	"call-console/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

const storageInitTimeout = 15 * time.Second

func setupDI(cfg *config.Config, log *slog.Logger) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)
	registerStorage(injector)

	credentials.RegisterDI(injector)
	orchestrator.RegisterDI(injector)
	quickcall.RegisterDI(injector)
	audit.RegisterDI(injector)

	do.ProvideValue(injector, drafts.NewStoreWithTTL(cfg.Drafts.TTL))
	do.Provide(injector, func(i do.Injector) (*reporting.Service, error) {
		return reporting.NewService(do.MustInvoke[*orchestrator.Client](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (httpapi.Handlers, error) {
		parser, ok := contacts.ParserNamed(cfg.HTTP.CSVParser)
		if !ok {
			return httpapi.Handlers{}, fmt.Errorf("unknown csv parser %q", cfg.HTTP.CSVParser)
		}
		return httpapi.Handlers{
			Orchestrator: do.MustInvoke[*orchestrator.Client](i),
			Drafts:       do.MustInvoke[*drafts.Store](i),
			QuickCall:    do.MustInvoke[*quickcall.Controller](i),
			Reports:      do.MustInvoke[*reporting.Service](i),
			Audit:        do.MustInvoke[*audit.Service](i),
			CSV:          parser,
			LoginPath:    cfg.HTTP.LoginPath,
		}, nil
	})

	return injector
}

// registerStorage provides the optional Redis and Postgres clients. They are
// only built when a consumer asks for them.
func registerStorage(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), storageInitTimeout)
		defer cancel()
		rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return rdb, nil
	})
	do.Provide(injector, func(i do.Injector) (*sql.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), storageInitTimeout)
		defer cancel()
		db, err := utils.OpenPostgres(ctx, utils.PostgresConfig{DSN: cfg.PostgresDSN()})
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		return db, nil
	})
}
