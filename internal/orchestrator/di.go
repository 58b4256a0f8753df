package orchestrator

import (
	"context"
	"log/slog"

	"call-console/internal/config"
	"call-console/internal/credentials"

	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		tokens := do.MustInvoke[credentials.Store](i)
		log := do.MustInvoke[*slog.Logger](i)
		return NewClient(tokens, Options{
			BaseURL: cfg.Orchestrator.BaseURL,
			Timeout: cfg.Orchestrator.Timeout,
			Logger:  log,
			OnUnauthorized: func(ctx context.Context) {
				log.Warn("orchestrator rejected the session token, login required", "login_path", cfg.HTTP.LoginPath)
			},
		}), nil
	})
}
