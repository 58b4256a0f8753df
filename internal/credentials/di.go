package credentials

import (
	"call-console/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

// RegisterDI provides the Store: Redis-backed when REDIS_HOST is set, in memory otherwise.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.UsesRedis() {
			return NewMemoryStore(), nil
		}
		rdb, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, cfg.HTTP.SessionName), nil
	})
}
