package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"storefront-api/services"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	productCachePrefix     = "product:detail:v"
	productListCachePrefix = "products:v"
	cacheVersionKey        = "products:version"

	cacheTTL = 10 * time.Minute
)

// CacheManager caches catalog reads in Redis. Every key, listing and detail
// alike, embeds a version counter that is bumped on each product, category,
// or review write, so a single Incr expires all stale entries at once without
// key scans. The version is captured when the cache is consulted and carried
// through to the write, so a bump that lands between the DB read and the
// async set strands the stale page under the old version instead of storing
// it under the new one. A nil manager or an unreachable Redis degrades to
// uncached reads.
type CacheManager struct {
	redis *redis.Client
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{redis: redis}
}

// GetList retrieves a cached listing response. The returned version must be
// handed to SetListAsync on a miss.
func (cm *CacheManager) GetList(ctx context.Context, params services.ListProductsParams) (map[string]interface{}, int64, bool) {
	if cm == nil || cm.redis == nil {
		return nil, 0, false
	}
	version, err := cm.version(ctx)
	if err != nil || version == 0 {
		return nil, 0, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version, params)).Result()
	if err != nil {
		return nil, version, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, version, false
	}
	return response, version, true
}

// SetListAsync caches a listing response under the version observed before
// the backing query ran, without blocking the request.
func (cm *CacheManager) SetListAsync(version int64, params services.ListProductsParams, response interface{}) {
	if cm == nil || cm.redis == nil || version == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(ctx, cm.listKey(version, params), payload, cacheTTL).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetDetail retrieves a cached product detail response by id or slug key. The
// returned version must be handed to SetDetailAsync on a miss.
func (cm *CacheManager) GetDetail(ctx context.Context, key string) (map[string]interface{}, int64, bool) {
	if cm == nil || cm.redis == nil {
		return nil, 0, false
	}
	version, err := cm.version(ctx)
	if err != nil || version == 0 {
		return nil, 0, false
	}

	cached, err := cm.redis.Get(ctx, cm.detailKey(version, key)).Result()
	if err != nil {
		return nil, version, false
	}
	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return nil, version, false
	}
	return response, version, true
}

// SetDetailAsync caches a product detail response without blocking.
func (cm *CacheManager) SetDetailAsync(version int64, key string, response interface{}) {
	if cm == nil || cm.redis == nil || version == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(response)
		if err != nil {
			return
		}
		if err := cm.redis.Set(ctx, cm.detailKey(version, key), payload, cacheTTL).Err(); err != nil {
			zap.L().Warn("Failed to cache product detail", zap.Error(err))
		}
	}()
}

// Invalidate bumps the version counter, orphaning every cached listing and
// detail entry at once. Orphaned entries age out through the TTL.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if cm == nil || cm.redis == nil {
		return
	}
	if err := cm.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump product cache version", zap.Error(err))
	}
}

func (cm *CacheManager) version(ctx context.Context) (int64, error) {
	value, err := cm.redis.Get(ctx, cacheVersionKey).Result()
	if err == redis.Nil {
		// First use; seed the counter so subsequent sets share a version.
		if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func (cm *CacheManager) detailKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", productCachePrefix, version, key)
}

func (cm *CacheManager) listKey(version int64, p services.ListProductsParams) string {
	minPrice, maxPrice := "", ""
	if p.MinPrice != nil {
		minPrice = strconv.FormatFloat(*p.MinPrice, 'f', -1, 64)
	}
	if p.MaxPrice != nil {
		maxPrice = strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64)
	}
	featured := ""
	if p.Featured != nil {
		featured = strconv.FormatBool(*p.Featured)
	}
	return fmt.Sprintf("%s%d:p%d:l%d:s=%s:c=%s:b=%s:st=%s:f=%s:pr=%s-%s:o=%s",
		productListCachePrefix, version, p.Page, p.Limit,
		p.Search, p.Category, p.Brand, p.Status, featured, minPrice, maxPrice, p.Sort)
}
