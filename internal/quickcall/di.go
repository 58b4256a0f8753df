package quickcall

import (
	"log/slog"

	"call-console/internal/config"
	"call-console/internal/orchestrator"

	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Controller, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*orchestrator.Client](i)
		log := do.MustInvoke[*slog.Logger](i)
		return NewController(client, Options{
			Interval: cfg.QuickCall.PollInterval,
			Logger:   log.With("component", "quickcall"),
		}), nil
	})
}
