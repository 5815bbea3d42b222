package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"preventive-care-tracker/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// catalogCacheKey holds the serialized public catalog
	catalogCacheKey = "catalog:public"

	// catalogCacheTTL bounds staleness when an invalidation is missed
	catalogCacheTTL = 10 * time.Minute

	// Timeout for individual Redis operations
	catalogCacheTimeout = 3 * time.Second
)

// CatalogCacheService caches the public guideline catalog in Redis. The
// catalog is read on every recommendation request but mutated only by admin
// edits and personalization clones, so a write-invalidated cache fits.
//
// Redis being down never fails a request; every miss path falls back to the
// database and logs a warning.
type CatalogCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewCatalogCacheService(redisClient *redis.Client, log *logrus.Logger) *CatalogCacheService {
	return &CatalogCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get returns the cached public catalog, or ok=false on a miss or any
// Redis/decode failure.
func (s *CatalogCacheService) Get(ctx context.Context) ([]entity.Guideline, bool) {
	ctx, cancel := context.WithTimeout(ctx, catalogCacheTimeout)
	defer cancel()

	payload, err := s.redisClient.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Catalog cache read failed: %+v", err)
		}
		return nil, false
	}

	var guidelines []entity.Guideline
	if err := json.Unmarshal(payload, &guidelines); err != nil {
		s.log.Warnf("Catalog cache payload corrupt, dropping: %+v", err)
		s.invalidate(ctx)
		return nil, false
	}

	return guidelines, true
}

// Set stores the public catalog. Failures are logged and swallowed; the
// cache is an optimization, not a source of truth.
func (s *CatalogCacheService) Set(ctx context.Context, guidelines []entity.Guideline) {
	payload, err := json.Marshal(guidelines)
	if err != nil {
		s.log.Warnf("Failed to serialize catalog for cache: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, catalogCacheTimeout)
	defer cancel()

	if err := s.redisClient.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
		s.log.Warnf("Catalog cache write failed: %+v", err)
	}
}

// Invalidate drops the cached catalog. Call after any guideline mutation.
func (s *CatalogCacheService) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, catalogCacheTimeout)
	defer cancel()
	s.invalidate(ctx)
}

func (s *CatalogCacheService) invalidate(ctx context.Context) {
	if err := s.redisClient.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warnf("Catalog cache invalidation failed: %+v", err)
	}
}
