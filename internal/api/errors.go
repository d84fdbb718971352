package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walatech/tenant-core/internal/api/dto"
	"github.com/walatech/tenant-core/internal/service"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTenantInactive),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidLifecycleTransition),
		errors.Is(err, service.ErrConflictingSubdomain):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, service.ErrInvalidSubdomain),
		errors.Is(err, service.ErrInvalidTenant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.JSON(status, dto.Error{Error: message})
}
