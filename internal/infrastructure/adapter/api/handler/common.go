package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps domain errors to HTTP status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrSelfTransfer),
		errors.Is(err, domainerr.ErrInvalidWebhookURL),
		errors.Is(err, domainerr.ErrPinNotSet):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerr.ErrForbidden),
		errors.Is(err, domainerr.ErrInvalidPin),
		errors.Is(err, domainerr.ErrUnsupportedAccountType),
		errors.Is(err, domainerr.ErrUnsupportedRecipient):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err), errors.Is(err, domainerr.ErrNoJob):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicate),
		errors.Is(err, domainerr.ErrConflict),
		errors.Is(err, domainerr.ErrAlreadyConsumed),
		errors.Is(err, domainerr.ErrAlreadyRedeemed):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrTokenExpired),
		errors.Is(err, domainerr.ErrGiftCodeExpired):
		return http.StatusGone
	case errors.Is(err, domainerr.ErrAccountFrozen),
		errors.Is(err, domainerr.ErrAccountDeleted),
		errors.Is(err, domainerr.ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, domainerr.ErrCooldownActive):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a standardized error response. Server-side failures
// are logged and masked; client errors carry the domain message.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := httpStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBindError writes a 400 for malformed request payloads
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid request format: " + err.Error(),
	})
}
