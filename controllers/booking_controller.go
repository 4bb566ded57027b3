package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type BookingSvc interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	Quote(ctx context.Context, propertyID models.PropertyID, req models.BookingRequest) (services.Quote, error)
	Checkout(ctx context.Context, propertyID models.PropertyID, req models.BookingRequest) (models.Booking, error)
}

type BookingController struct {
	BookingSvc BookingSvc
	Log        *slog.Logger
}

func NewBookingController(svc BookingSvc, log *slog.Logger) *BookingController {
	return &BookingController{BookingSvc: svc, Log: log}
}

// GET /api/bookings
func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, bc.Log, err, "Failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// POST /api/bookings
// Accepts an already priced booking record; only the store-level required
// fields are checked here.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidBody(c)
		return
	}

	booking, err := bc.BookingSvc.Create(c.Request.Context(), payload.booking())
	if err != nil {
		respondError(c, bc.Log, err, "Failed to create booking")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Booking created successfully", gin.H{
		"bookingId": booking.ID,
		"booking":   booking,
	})
}

// GET /api/bookings/:id
func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.BookingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, bc.Log, err, "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/properties/:id/quote
func (bc *BookingController) QuoteBooking(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var payload CheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidBody(c)
		return
	}

	quote, err := bc.BookingSvc.Quote(c.Request.Context(), id, payload.request())
	if err != nil {
		respondError(c, bc.Log, err, "Failed to price booking")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// POST /api/properties/:id/bookings
// Runs the full booking form rules, prices the stay server-side and stores it.
func (bc *BookingController) CheckoutBooking(c *gin.Context) {
	id, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var payload CheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidBody(c)
		return
	}

	booking, err := bc.BookingSvc.Checkout(c.Request.Context(), id, payload.request())
	if err != nil {
		respondError(c, bc.Log, err, "Failed to create booking")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Booking created successfully", gin.H{
		"bookingId": booking.ID,
		"booking":   booking,
	})
}
