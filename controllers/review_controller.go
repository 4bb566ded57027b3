package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
)

type ReviewSvc interface {
	ListByProperty(ctx context.Context, propertyID models.PropertyID) ([]models.Review, error)
	Stats(ctx context.Context, propertyID models.PropertyID) (models.ReviewStats, error)
	Create(ctx context.Context, propertyID models.PropertyID, r models.Review) (models.Review, error)
	MarkHelpful(ctx context.Context, reviewID string) (models.Review, error)
}

type ReviewController struct {
	ReviewSvc ReviewSvc
	Log       *slog.Logger
}

func NewReviewController(svc ReviewSvc, log *slog.Logger) *ReviewController {
	return &ReviewController{ReviewSvc: svc, Log: log}
}

// GET /api/properties/:id/reviews
func (rc *ReviewController) GetReviews(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}

	reviews, err := rc.ReviewSvc.ListByProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.Log, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GET /api/properties/:id/reviews/stats
func (rc *ReviewController) GetReviewStats(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}

	stats, err := rc.ReviewSvc.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.Log, err, "Failed to fetch review stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// POST /api/properties/:id/reviews
func (rc *ReviewController) CreateReview(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var payload ReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidBody(c)
		return
	}

	review, err := rc.ReviewSvc.Create(c.Request.Context(), id, models.Review{
		UserID:     payload.UserID,
		UserName:   payload.UserName,
		UserAvatar: payload.UserAvatar,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
		Helpful:    payload.Helpful,
	})
	if err != nil {
		respondError(c, rc.Log, err, "Failed to submit review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// POST /api/reviews/:reviewId/helpful
func (rc *ReviewController) MarkHelpful(c *gin.Context) {
	review, err := rc.ReviewSvc.MarkHelpful(c.Request.Context(), c.Param("reviewId"))
	if err != nil {
		respondError(c, rc.Log, err, "Failed to record vote")
		return
	}
	c.JSON(http.StatusOK, review)
}
