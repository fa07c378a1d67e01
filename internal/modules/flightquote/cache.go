package flightquote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"
)

// Cache memoizes route discovery results. Fare tables change rarely, so a
// short TTL keeps repeated itinerary lookups cheap without staleness risk.
type Cache interface {
	Get(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, bool)
	Set(ctx context.Context, req pricing.RouteRequest, options []pricing.RouteOption) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, bool) {
	data, err := c.client.Get(ctx, cacheKey(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var options []pricing.RouteOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, false
	}

	return options, true
}

func (c *RedisCache) Set(ctx context.Context, req pricing.RouteRequest, options []pricing.RouteOption) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache is the fallback when no Redis is configured; every lookup is a
// miss and writes are discarded.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req pricing.RouteRequest) ([]pricing.RouteOption, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req pricing.RouteRequest, options []pricing.RouteOption) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func cacheKey(req pricing.RouteRequest) string {
	// the passenger mix changes the blended fare factor, so every count
	// participates in the key, not just the total
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		CabinClass    string
		Passengers    domain.PassengerCounts
		Baggage       domain.BaggageAllowance
	}{
		Origin:      req.Origin,
		Destination: req.Destination,
		CabinClass:  string(req.CabinClass),
		Passengers:  req.Passengers,
		Baggage:     req.Baggage,
	}
	if !req.DepartureDate.IsZero() {
		keyData.DepartureDate = req.DepartureDate.UTC().Format("2006-01-02")
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "routes:" + hex.EncodeToString(hash[:])
}
