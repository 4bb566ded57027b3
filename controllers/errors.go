package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/utils"
	"rental-backend/validation"
)

// respondError maps service errors onto HTTP responses. Anything unexpected is
// logged and answered with fallback so internals never reach the client.
func respondError(c *gin.Context, log *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrMissingRequiredFields):
		utils.JSONError(c, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, models.ErrPropertyNotFound):
		utils.JSONError(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, models.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, models.ErrReviewNotFound):
		utils.JSONError(c, http.StatusNotFound, "Review not found")
	default:
		if errs, ok := validation.AsErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "errors": errs})
			return
		}
		log.ErrorContext(c.Request.Context(), fallback,
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString("requestId")),
		)
		utils.JSONError(c, http.StatusInternalServerError, fallback)
	}
}

func invalidBody(c *gin.Context) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
}

// propertyIDParam reports false when the path id cannot name any property.
func propertyIDParam(c *gin.Context) (models.PropertyID, bool) {
	id, ok := models.ParsePropertyID(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Property not found")
	}
	return id, ok
}
