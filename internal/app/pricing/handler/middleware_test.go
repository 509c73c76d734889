package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository/mocks"
	"pricewatch/internal/app/pricing/service"
	"pricewatch/internal/app/pricing/util"
)

func newTestAuthMiddleware() (*AuthMiddleware, *mocks.MockTokenRepository, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret-key", 24*time.Hour)

	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager)
	return NewAuthMiddleware(authService), tokenRepo, jwtManager
}

func protectedRouter(mw *AuthMiddleware, roles ...entity.Role) *gin.Engine {
	router := gin.New()
	group := router.Group("/protected")
	group.Use(mw.Authenticate())
	if len(roles) > 0 {
		group.Use(mw.RequireRole(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	// Arrange
	mw, tokenRepo, jwtManager := newTestAuthMiddleware()

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "jsmith", entity.RoleSalesRep)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(mw)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	mw, _, _ := newTestAuthMiddleware()
	router := protectedRouter(mw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_Authenticate_MalformedHeader(t *testing.T) {
	mw, _, _ := newTestAuthMiddleware()
	router := protectedRouter(mw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_Authenticate_RevokedToken(t *testing.T) {
	mw, tokenRepo, jwtManager := newTestAuthMiddleware()

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "jsmith", entity.RoleSalesRep)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(true, nil)

	router := protectedRouter(mw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RequireRole_Forbidden(t *testing.T) {
	// Arrange: sales_rep пытается попасть на admin-only маршрут
	mw, tokenRepo, jwtManager := newTestAuthMiddleware()

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "jsmith", entity.RoleSalesRep)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(mw, entity.RoleAdmin)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_RequireRole_AllowsListedRole(t *testing.T) {
	mw, tokenRepo, jwtManager := newTestAuthMiddleware()

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "manager", entity.RoleSalesManager)
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(mw, entity.RoleAdmin, entity.RoleSalesManager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
