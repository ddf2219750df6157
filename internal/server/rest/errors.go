package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/common"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/services"
)

// writeError maps a service error to a status and body and returns the code
// it wrote. Unexpected errors are logged and answered with a generic 500.
func (s *HTTPServer) writeError(c *gin.Context, err error) string {
	var ve *services.ValidationError

	switch {
	case errors.Is(err, common.ErrorInternal):
	case errors.As(err, &ve):
		writeValidation(c, ve.Message)
		return api.CodeValidation
	case errors.Is(err, common.ErrValidation):
		writeValidation(c, "Invalid request")
		return api.CodeValidation
	case errors.Is(err, common.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Email already registered", Code: api.CodeDuplicateEmail})
		return api.CodeDuplicateEmail
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid credentials", Code: api.CodeInvalidCredentials})
		return api.CodeInvalidCredentials
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found", Code: api.CodeNotFound})
		return api.CodeNotFound
	}

	s.logger.Error(c.Request.Context(), "request failed",
		append([]any{"route", c.FullPath()}, logging.ErrorAttrs(err)...)...)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Code: api.CodeInternal})
	return api.CodeInternal
}

func writeValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg, Code: api.CodeValidation})
}
