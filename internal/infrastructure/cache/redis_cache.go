package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dukaanlabs/dukaan-api/internal/application/reports"
)

var _ reports.ReportCache = (*RedisCache)(nil)

// RedisCache cache de reportes sobre Redis. Los errores de Redis se registran
// y se tratan como fallo de acierto: la app sigue sirviendo desde la DB.
type RedisCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisCache conecta el cliente y verifica la conexión.
func NewRedisCache(ctx context.Context, addr, password string, db int, logger zerolog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, logger: logger}, nil
}

// Get lee una entrada; devuelve acierto falso si no existe o Redis falla.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache get falló")
		}
		return nil, false
	}
	return val, true
}

// Set escribe una entrada con TTL; los errores solo se registran.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set falló")
	}
}

// Invalidate borra las entradas cuyo prefijo coincida.
func (c *RedisCache) Invalidate(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", iter.Val()).Msg("cache del falló")
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache scan falló")
	}
}

// Close cierra el cliente.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache implementación nula: sin Redis configurado todo va a la DB.
type NoopCache struct{}

var _ reports.ReportCache = NoopCache{}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}

func (NoopCache) Invalidate(ctx context.Context, prefix string) {}
