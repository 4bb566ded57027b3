package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
)

type PropertyReader interface {
	List(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id models.PropertyID) (models.Property, error)
}

type PropertyController struct {
	PropertySvc PropertyReader
	Log         *slog.Logger
}

func NewPropertyController(svc PropertyReader, log *slog.Logger) *PropertyController {
	return &PropertyController{PropertySvc: svc, Log: log}
}

// GET /api/properties
func (pc *PropertyController) GetProperties(c *gin.Context) {
	properties, err := pc.PropertySvc.List(c.Request.Context())
	if err != nil {
		respondError(c, pc.Log, err, "Failed to fetch properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GET /api/properties/:id
func (pc *PropertyController) GetProperty(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}

	property, err := pc.PropertySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, pc.Log, err, "Failed to fetch property")
		return
	}
	c.JSON(http.StatusOK, property)
}
