package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TokenRepositoryTestSuite тестовый suite для Redis черного списка
type TokenRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      TokenRepository
}

func TestTokenRepositorySuite(t *testing.T) {
	suite.Run(t, new(TokenRepositoryTestSuite))
}

func (s *TokenRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRedisTokenRepository(s.client)
}

func (s *TokenRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *TokenRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *TokenRepositoryTestSuite) TestAddToBlacklist_ThenIsBlacklisted() {
	ctx := context.Background()

	err := s.repo.AddToBlacklist(ctx, "some.jwt.token", time.Now().Add(time.Hour))
	s.NoError(err)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "some.jwt.token")
	s.NoError(err)
	s.True(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestIsBlacklisted_UnknownToken() {
	ctx := context.Background()

	blacklisted, err := s.repo.IsBlacklisted(ctx, "never.seen.token")
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestAddToBlacklist_ExpiredTokenIsNoop() {
	ctx := context.Background()

	// Истекший токен не попадает в черный список
	err := s.repo.AddToBlacklist(ctx, "expired.jwt.token", time.Now().Add(-time.Minute))
	s.NoError(err)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "expired.jwt.token")
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestBlacklistEntryExpires() {
	ctx := context.Background()

	err := s.repo.AddToBlacklist(ctx, "short.lived.token", time.Now().Add(time.Minute))
	s.NoError(err)

	// miniredis позволяет промотать время вперед
	s.miniRedis.FastForward(2 * time.Minute)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "short.lived.token")
	s.NoError(err)
	s.False(blacklisted)
}
