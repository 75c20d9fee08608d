package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hsc-mapper/internal/cache"
	"hsc-mapper/internal/config"
	"hsc-mapper/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cacheTestConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{TaxonomyTTL: 5 * time.Minute},
	}
}

func TestTaxonomyCacheService_Hit(t *testing.T) {
	mockCache := new(MockCache)
	mockRepo := new(MockTaxonomyRepository)
	svc := NewTaxonomyCacheService(mockCache, mockRepo, cacheTestConfig())

	rows := vectorTaxonomyRows()
	encoded, err := json.Marshal(rows)
	require.NoError(t, err)

	key := cache.GenerateCacheKey("taxonomy", "dotpoints", "Maths", "11_12")
	mockCache.On("Get", mock.Anything, key).Return(string(encoded), nil)

	got, err := svc.GetDotPoints(context.Background(), []string{"11", "12"}, "Maths")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	mockRepo.AssertNotCalled(t, "GetDotPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxonomyCacheService_MissFetchesAndStores(t *testing.T) {
	mockCache := new(MockCache)
	mockRepo := new(MockTaxonomyRepository)
	cfg := cacheTestConfig()
	svc := NewTaxonomyCacheService(mockCache, mockRepo, cfg)

	rows := vectorTaxonomyRows()
	key := cache.GenerateCacheKey("taxonomy", "dotpoints", "Maths", "11_12")

	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
	mockRepo.On("GetDotPoints", mock.Anything, []string{"11", "12"}, "Maths").Return(rows, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, cfg.Cache.TaxonomyTTL).Return(nil)

	got, err := svc.GetDotPoints(context.Background(), []string{"11", "12"}, "Maths")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	mockCache.AssertCalled(t, "Set", mock.Anything, key, mock.Anything, cfg.Cache.TaxonomyTTL)
}

func TestTaxonomyCacheService_CorruptEntryDroppedAndReloaded(t *testing.T) {
	mockCache := new(MockCache)
	mockRepo := new(MockTaxonomyRepository)
	svc := NewTaxonomyCacheService(mockCache, mockRepo, cacheTestConfig())

	rows := vectorTaxonomyRows()
	key := cache.GenerateCacheKey("taxonomy", "dotpoints", "Maths", "12")

	mockCache.On("Get", mock.Anything, key).Return("{not json", nil)
	mockCache.On("Delete", mock.Anything, key).Return(nil)
	mockRepo.On("GetDotPoints", mock.Anything, []string{"12"}, "Maths").Return(rows, nil)
	mockCache.On("Set", mock.Anything, key, mock.Anything, mock.Anything).Return(nil)

	got, err := svc.GetDotPoints(context.Background(), []string{"12"}, "Maths")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	mockCache.AssertCalled(t, "Delete", mock.Anything, key)
}

func TestTaxonomyCacheService_NilCacheGoesDirect(t *testing.T) {
	mockRepo := new(MockTaxonomyRepository)
	svc := NewTaxonomyCacheService(nil, mockRepo, cacheTestConfig())

	rows := vectorTaxonomyRows()
	mockRepo.On("GetDotPoints", mock.Anything, []string{"11"}, "Maths").Return(rows, nil)

	got, err := svc.GetDotPoints(context.Background(), []string{"11"}, "Maths")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestTaxonomyCacheService_RepoErrorPropagates(t *testing.T) {
	mockCache := new(MockCache)
	mockRepo := new(MockTaxonomyRepository)
	svc := NewTaxonomyCacheService(mockCache, mockRepo, cacheTestConfig())

	key := cache.GenerateCacheKey("taxonomy", "dotpoints", "Maths", "12")
	mockCache.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
	mockRepo.On("GetDotPoints", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.GetDotPoints(context.Background(), []string{"12"}, "Maths")
	assert.ErrorIs(t, err, assert.AnError)
}
