package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/service"
)

// UserHandler обрабатывает административные запросы к пользователям
type UserHandler struct {
	userService service.UserServiceInterface
	validator   *validator.Validate
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// List обрабатывает GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateRole обрабатывает PUT /api/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req entity.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, entity.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidRole):
			respondError(c, http.StatusBadRequest, "Invalid role")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update user role")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
