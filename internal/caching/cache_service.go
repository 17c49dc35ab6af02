package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"corpsite/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Catalog caching
	GetService(ctx context.Context, serviceID int) (*models.Service, error)
	SetService(ctx context.Context, service *models.Service, ttl time.Duration) error
	DeleteService(ctx context.Context, serviceID int) error

	// Company info caching
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	SetCompanyInfo(ctx context.Context, info *models.CompanyInfo, ttl time.Duration) error
	DeleteCompanyInfo(ctx context.Context) error

	// Cache invalidation
	InvalidateCatalogCache(ctx context.Context) error
	InvalidateAllCache(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetService(ctx context.Context, serviceID int) (*models.Service, error) {
	key := fmt.Sprintf("corpsite:service:%d", serviceID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var service models.Service
	if err := json.Unmarshal(data, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *redisCacheService) SetService(ctx context.Context, service *models.Service, ttl time.Duration) error {
	key := fmt.Sprintf("corpsite:service:%d", service.ID)
	data, err := json.Marshal(service)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteService(ctx context.Context, serviceID int) error {
	key := fmt.Sprintf("corpsite:service:%d", serviceID)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	data, err := r.client.Get(ctx, "corpsite:company_info").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var info models.CompanyInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *redisCacheService) SetCompanyInfo(ctx context.Context, info *models.CompanyInfo, ttl time.Duration) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "corpsite:company_info", data, ttl).Err()
}

func (r *redisCacheService) DeleteCompanyInfo(ctx context.Context) error {
	return r.client.Del(ctx, "corpsite:company_info").Err()
}

func (r *redisCacheService) InvalidateCatalogCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "corpsite:service:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "corpsite:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("corpsite:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
