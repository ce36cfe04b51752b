package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

const unitTTL = 5 * time.Minute

// NewRedisClient conecta no Redis. Falha de conexão não é fatal: o cache
// é opcional e o serviço roda sem ele.
func NewRedisClient(redisURL string, logger *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid redis url, cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cache disabled", zap.Error(err))
		return nil
	}

	return client
}

// UnitCache guarda a resolução instance_name -> unidade, que o canal
// conversacional consulta em toda requisição. Todas as operações são
// nil-safe e best-effort: erro de cache nunca propaga.
type UnitCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewUnitCache(client *redis.Client, logger *zap.Logger) *UnitCache {
	return &UnitCache{client: client, logger: logger}
}

func (c *UnitCache) key(instanceName string) string {
	return "unit:instance:" + instanceName
}

func (c *UnitCache) Get(ctx context.Context, instanceName string) (*models.Unit, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.key(instanceName)).Bytes()
	if err != nil {
		return nil, false
	}

	var unit models.Unit
	if err := json.Unmarshal(raw, &unit); err != nil {
		return nil, false
	}
	return &unit, true
}

func (c *UnitCache) Set(ctx context.Context, instanceName string, unit *models.Unit) {
	if c == nil || c.client == nil || unit == nil {
		return
	}

	raw, err := json.Marshal(unit)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, c.key(instanceName), raw, unitTTL).Err(); err != nil {
		c.logger.Debug("unit cache set failed", zap.Error(err))
	}
}

func (c *UnitCache) Invalidate(ctx context.Context, instanceName string) {
	if c == nil || c.client == nil || instanceName == "" {
		return
	}
	c.client.Del(ctx, c.key(instanceName))
}
