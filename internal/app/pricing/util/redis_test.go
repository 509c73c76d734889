package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pricewatch/internal/app/pricing/entity"
)

// RedisCacheTestSuite тестовый suite для кеша справочных списков
type RedisCacheTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     *RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

func (s *RedisCacheTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.cache = NewRedisCache(s.client)
}

func (s *RedisCacheTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisCacheTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisCacheTestSuite) TestSetAndGetCompetitors() {
	ctx := context.Background()

	competitors := []entity.Competitor{
		{ID: uuid.New(), Name: "Acme Corp", Category: "SaaS"},
		{ID: uuid.New(), Name: "Globex", Category: "Retail"},
	}

	err := s.cache.SetCompetitors(ctx, competitors, time.Hour)
	s.NoError(err)

	got, err := s.cache.GetCompetitors(ctx)
	s.NoError(err)
	s.Len(got, 2)
	s.Equal(competitors[0].ID, got[0].ID)
	s.Equal("Acme Corp", got[0].Name)
}

func (s *RedisCacheTestSuite) TestGetCompetitors_EmptyCache() {
	ctx := context.Background()

	// Промах кеша - nil без ошибки
	got, err := s.cache.GetCompetitors(ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisCacheTestSuite) TestDeleteCompetitors() {
	ctx := context.Background()

	err := s.cache.SetCompetitors(ctx, []entity.Competitor{{ID: uuid.New(), Name: "Acme Corp"}}, time.Hour)
	s.NoError(err)

	err = s.cache.DeleteCompetitors(ctx)
	s.NoError(err)

	got, err := s.cache.GetCompetitors(ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisCacheTestSuite) TestProductsExpireAfterTTL() {
	ctx := context.Background()

	err := s.cache.SetProducts(ctx, []entity.Product{{ID: uuid.New(), Name: "Analytics Suite"}}, time.Minute)
	s.NoError(err)

	s.miniRedis.FastForward(2 * time.Minute)

	got, err := s.cache.GetProducts(ctx)
	s.NoError(err)
	s.Nil(got)
}
