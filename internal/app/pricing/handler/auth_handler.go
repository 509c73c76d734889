package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/service"
)

// AuthHandler обрабатывает HTTP запросы аутентификации
type AuthHandler struct {
	authService service.AuthServiceInterface
	validator   *validator.Validate
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusConflict, "User with this username or email already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout обрабатывает POST /api/auth/logout
// Токен берется из контекста, положенного middleware
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenValue, exists := c.Get("token")
	token, ok := tokenValue.(string)
	if !exists || !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			respondError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Logged out"})
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}
