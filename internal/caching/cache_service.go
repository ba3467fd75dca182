package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda/internal/models"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	DeleteProducts(ctx context.Context, productIDs []uuid.UUID) error

	// Connectivity, used by health checks
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", addr), zap.Error(err))
	}

	return &redisCacheService{client: client, logger: logger}
}

func productKey(productID uuid.UUID) string {
	return fmt.Sprintf("tienda:product:%s", productID.String())
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(product.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return r.client.Del(ctx, productKey(productID)).Err()
}

// DeleteProducts invalidates a batch of products at once; the sale processor
// calls it after commit for every product whose stock changed.
func (r *redisCacheService) DeleteProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
