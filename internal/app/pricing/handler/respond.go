package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pricewatch/internal/app/pricing/entity"
)

// respondError отправляет стандартный ответ об ошибке
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			return validationErrors[0].Field() + " validation failed"
		}
	}
	return "Validation failed"
}
