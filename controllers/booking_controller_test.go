package controllers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/validation"
)

type mockBookingSvc struct {
	mock.Mock
}

func (m *mockBookingSvc) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *mockBookingSvc) List(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *mockBookingSvc) GetByID(ctx context.Context, id string) (models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *mockBookingSvc) Quote(ctx context.Context, pid models.PropertyID, req models.BookingRequest) (services.Quote, error) {
	args := m.Called(ctx, pid, req)
	return args.Get(0).(services.Quote), args.Error(1)
}

func (m *mockBookingSvc) Checkout(ctx context.Context, pid models.PropertyID, req models.BookingRequest) (models.Booking, error) {
	args := m.Called(ctx, pid, req)
	return args.Get(0).(models.Booking), args.Error(1)
}

func setupBookingRouter(svc BookingSvc, logBuf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	bc := NewBookingController(svc, slog.New(slog.NewTextHandler(logBuf, nil)))

	r := gin.New()
	r.GET("/api/bookings", bc.GetBookings)
	r.POST("/api/bookings", bc.CreateBooking)
	r.POST("/api/properties/:id/bookings", bc.CheckoutBooking)
	return r
}

func TestCreateBooking_StoreFailure(t *testing.T) {
	svc := new(mockBookingSvc)
	svc.On("Create", mock.Anything, mock.Anything).Return(models.Booking{}, errors.New("connection refused"))

	var logs bytes.Buffer
	r := setupBookingRouter(svc, &logs)

	w := httptest.NewRecorder()
	body := `{"propertyId":1,"email":"a@b.c","firstName":"A","lastName":"B"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to create booking"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
	svc.AssertExpectations(t)
}

func TestCreateBooking_FlatAndNestedAddress(t *testing.T) {
	svc := new(mockBookingSvc)
	var captured []models.Booking
	svc.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = append(captured, args.Get(1).(models.Booking)) }).
		Return(models.Booking{ID: "booking_x"}, nil)

	r := setupBookingRouter(svc, &bytes.Buffer{})

	for _, body := range []string{
		`{"propertyId":"4","email":"a@b.c","firstName":"A","lastName":"B","street":"1 Main","city":"Springfield","zipCode":"62701"}`,
		`{"propertyId":4,"email":"a@b.c","firstName":"A","lastName":"B","billingAddress":{"street":"1 Main","city":"Springfield","zipCode":"62701"},"city":"ignored"}`,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	require.Len(t, captured, 2)
	for _, b := range captured {
		assert.Equal(t, models.PropertyID(4), b.PropertyID)
		assert.Equal(t, models.BillingAddress{Street: "1 Main", City: "Springfield", ZipCode: "62701"}, b.BillingAddress)
	}
}

func TestCreateBooking_MissingFieldsFromService(t *testing.T) {
	svc := new(mockBookingSvc)
	err := errors.Join(models.ErrMissingRequiredFields, validation.StoreFields(models.Booking{}))
	svc.On("Create", mock.Anything, mock.Anything).Return(models.Booking{}, err)

	r := setupBookingRouter(svc, &bytes.Buffer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())
}

func TestCheckout_InvalidPropertyID(t *testing.T) {
	svc := new(mockBookingSvc)
	r := setupBookingRouter(svc, &bytes.Buffer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/properties/abc/bookings", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBookings_NilBecomesEmptyArray(t *testing.T) {
	svc := new(mockBookingSvc)
	svc.On("List", mock.Anything).Return(nil, nil)

	r := setupBookingRouter(svc, &bytes.Buffer{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
