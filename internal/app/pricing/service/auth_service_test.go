package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/repository/mocks"
	"pricewatch/internal/app/pricing/util"
)

func newTestJWTManager() *util.JWTManager {
	return util.NewJWTManager("test-secret-key", 24*time.Hour)
}

func newTestUser() *entity.User {
	hash, _ := util.HashPassword("password123")
	return &entity.User{
		ID:           uuid.New(),
		Username:     "jsmith",
		Email:        "jsmith@example.com",
		PasswordHash: hash,
		FullName:     "John Smith",
		Role:         entity.RoleSalesRep,
		CreatedAt:    time.Now(),
	}
}

// ==================== Register Tests ====================

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)

	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewAuthService(userRepo, tokenRepo, newTestJWTManager())

	req := &entity.RegisterRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "password123",
		FullName: "New User",
	}

	// Act
	resp, err := svc.Register(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "newuser", resp.User.Username)
	assert.Equal(t, entity.RoleSalesRep, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(24*60*60), resp.ExpiresIn)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_UserAlreadyExists(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)

	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrUserExists)

	svc := NewAuthService(userRepo, tokenRepo, newTestJWTManager())

	req := &entity.RegisterRequest{
		Username: "jsmith",
		Email:    "jsmith@example.com",
		Password: "password123",
		FullName: "John Smith",
	}

	// Act
	resp, err := svc.Register(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, resp)
}

// ==================== Login Tests ====================

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)

	user := newTestUser()
	userRepo.On("GetByUsername", ctx, "jsmith").Return(user, nil)

	svc := NewAuthService(userRepo, tokenRepo, newTestJWTManager())

	// Act
	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Username: "jsmith",
		Password: "password123",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)

	userRepo.On("GetByUsername", ctx, "jsmith").Return(newTestUser(), nil)

	svc := NewAuthService(userRepo, tokenRepo, newTestJWTManager())

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Username: "jsmith",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)

	userRepo.On("GetByUsername", ctx, "ghost").
		Return(nil, repository.ErrUserNotFound)

	svc := NewAuthService(userRepo, tokenRepo, newTestJWTManager())

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Username: "ghost",
		Password: "password123",
	})

	// Несуществующий пользователь неотличим от неверного пароля
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

// ==================== Logout / ValidateToken Tests ====================

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := newTestJWTManager()

	user := newTestUser()
	token, err := jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	tokenRepo.On("AddToBlacklist", ctx, token, mock.AnythingOfType("time.Time")).Return(nil)

	svc := NewAuthService(userRepo, tokenRepo, jwtManager)

	// Act
	err = svc.Logout(ctx, token)

	// Assert
	require.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(new(mocks.MockUserRepository), new(mocks.MockTokenRepository), newTestJWTManager())

	err := svc.Logout(ctx, "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateToken_Blacklisted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := newTestJWTManager()

	user := newTestUser()
	token, err := jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", ctx, token).Return(true, nil)

	svc := NewAuthService(new(mocks.MockUserRepository), tokenRepo, jwtManager)

	// Act
	claims, err := svc.ValidateToken(ctx, token)

	// Assert
	assert.ErrorIs(t, err, ErrTokenBlacklisted)
	assert.Nil(t, claims)
}

func TestAuthService_ValidateToken_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := newTestJWTManager()

	user := newTestUser()
	token, err := jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", ctx, token).Return(false, nil)

	svc := NewAuthService(new(mocks.MockUserRepository), tokenRepo, jwtManager)

	// Act
	claims, err := svc.ValidateToken(ctx, token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, entity.RoleSalesRep, claims.Role)
}
