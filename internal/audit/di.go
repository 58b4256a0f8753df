package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"call-console/internal/config"

	"github.com/samber/do/v2"
)

const schemaTimeout = 15 * time.Second

// RegisterDI provides the Repository (Postgres when DB_HOST is set) and the Service.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.UsesPostgres() {
			return NewMemoryRepo(), nil
		}
		db, err := do.Invoke[*sql.DB](i)
		if err != nil {
			return nil, err
		}
		repo, err := NewPostgresRepo(db)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure audit schema: %w", err)
		}
		return repo, nil
	})
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		return NewService(do.MustInvoke[Repository](i)), nil
	})
}
