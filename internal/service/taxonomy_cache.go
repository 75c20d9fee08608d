package service

import (
	"context"
	"encoding/json"
	"strings"

	"hsc-mapper/internal/cache"
	"hsc-mapper/internal/config"
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TaxonomyProvider is what the mapping service consumes: a dot point row
// source. Implemented by the caching service below and, directly, by the
// repository adapter.
type TaxonomyProvider interface {
	GetDotPoints(ctx context.Context, grades []string, subject string) ([]domain.TaxonomyRow, error)
}

// taxonomyCacheService caches taxonomy row sets in Redis keyed by
// (grades, subject). The syllabus changes rarely but every batch request
// reloads it, so a short TTL saves a round of table scans per request.
// Concurrent loads for the same selector are collapsed via singleflight.
type taxonomyCacheService struct {
	cache   domain.Cache
	repo    domain.TaxonomyRepository
	cfg     *config.Config
	sfGroup singleflight.Group
}

// NewTaxonomyCacheService creates the caching wrapper. A nil cache degrades
// to direct repository reads.
func NewTaxonomyCacheService(cacheAdapter domain.Cache, repo domain.TaxonomyRepository, cfg *config.Config) TaxonomyProvider {
	return &taxonomyCacheService{
		cache: cacheAdapter,
		repo:  repo,
		cfg:   cfg,
	}
}

func (s *taxonomyCacheService) GetDotPoints(ctx context.Context, grades []string, subject string) ([]domain.TaxonomyRow, error) {
	if s.cache == nil {
		return s.repo.GetDotPoints(ctx, grades, subject)
	}

	cacheKey := cache.GenerateCacheKey("taxonomy", "dotpoints", subject, strings.Join(grades, "_"))

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var rows []domain.TaxonomyRow
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			return rows, nil
		}
		// Corrupt entry: drop it and fall through to a fresh load.
		logger.Get().Warn("Dropping unparseable taxonomy cache entry", zap.String("key", cacheKey))
		_ = s.cache.Delete(ctx, cacheKey)
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Taxonomy cache read failed, falling back to repository",
			zap.String("key", cacheKey), zap.Error(err))
	}

	result, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		rows, fetchErr := s.repo.GetDotPoints(ctx, grades, subject)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if encoded, encErr := json.Marshal(rows); encErr == nil {
			if setErr := s.cache.Set(ctx, cacheKey, string(encoded), s.cfg.Cache.TaxonomyTTL); setErr != nil {
				logger.Get().Warn("Failed to cache taxonomy rows",
					zap.String("key", cacheKey), zap.Error(setErr))
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.TaxonomyRow), nil
}
