package handlers

import (
	"errors"
	"net/http"

	"solace/services/booking"
	"solace/services/provider"
	"solace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service error kinds to HTTP statuses and the structured
// error envelope. Validation and conflict rejections are expected outcomes;
// only internal failures are logged as operational concerns.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var bookingValidation *booking.ValidationError
	var providerValidation *provider.ValidationError
	var bookingNotFound *booking.NotFoundError
	var providerNotFound *provider.NotFoundError
	var conflict *booking.ConflictError
	var forbidden *booking.ForbiddenError

	switch {
	case errors.As(err, &bookingValidation), errors.As(err, &providerValidation):
		utils.JSONError(c, http.StatusBadRequest, "validation", err.Error(), "")
	case errors.As(err, &bookingNotFound), errors.As(err, &providerNotFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", err.Error(), "")
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error(), "")
	case errors.As(err, &forbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error(), "")
	default:
		logger.Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal", "an unexpected error occurred", "")
	}
}
