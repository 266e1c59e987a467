package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/retail-backoffice/internal/cfg"
	"github.com/DRSN-tech/retail-backoffice/pkg/clients"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// CacheRepo — кэш готовых отчётов. Ключ формирует usecase-слой,
// значение хранится как сериализованный ответ целиком.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.ReportsCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.ReportsCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает закэшированный отчёт. Промах не является ошибкой.
func (r *CacheRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}

		r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, true, nil
}

// Set кэширует отчёт с TTL из конфигурации.
// Ошибка записи логируется и не прерывает запрос.
func (r *CacheRepo) Set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Client.Set(ctx, key, data, r.cfg.CacheTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}
