package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
)

var today = time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@example.com",
		Phone:          "555-0100",
		CheckInDate:    "2024-06-10",
		CheckOutDate:   "2024-06-13",
		Guests:         2,
		CardNumber:     "4111 1111 1111 1111",
		ExpirationDate: "12/27",
		CVV:            "123",
	}
}

func TestBookingRequest_Valid(t *testing.T) {
	stay, err := New().BookingRequest(validRequest(), today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), stay.CheckIn)
	assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), stay.CheckOut)
}

func TestBookingRequest_CheckInTodayAllowed(t *testing.T) {
	req := validRequest()
	req.CheckInDate = "2024-06-01"
	_, err := New().BookingRequest(req, today)
	assert.NoError(t, err)
}

func TestBookingRequest_ReportsEveryField(t *testing.T) {
	req := models.BookingRequest{
		FirstName:      "   ",
		CheckInDate:    "2024-06-10",
		CheckOutDate:   "2024-06-10",
		Guests:         0,
		CardNumber:     "4111",
		ExpirationDate: "13/27",
		CVV:            "12",
	}

	_, err := New().BookingRequest(req, today)
	errs, ok := AsErrors(err)
	require.True(t, ok)

	want := map[string]Code{
		"firstName":      RequiredField,
		"lastName":       RequiredField,
		"email":          RequiredField,
		"phone":          RequiredField,
		"checkOutDate":   InvalidDateRange,
		"guests":         InvalidGuestCount,
		"cardNumber":     InvalidCardNumber,
		"expirationDate": InvalidExpiration,
		"cvv":            InvalidCvv,
	}
	require.Len(t, errs, len(want))
	for field, code := range want {
		assert.Equal(t, code, errs[field].Code, field)
	}
	assert.NotContains(t, errs, "checkInDate")
}

func TestBookingRequest_Dates(t *testing.T) {
	tests := []struct {
		name     string
		in, out  string
		field    string
		wantCode Code
	}{
		{"missing check-in", "", "2024-06-13", "checkInDate", RequiredField},
		{"missing check-out", "2024-06-10", " ", "checkOutDate", RequiredField},
		{"check-in in the past", "2024-05-31", "2024-06-13", "checkInDate", InvalidDateRange},
		{"check-out before check-in", "2024-06-10", "2024-06-09", "checkOutDate", InvalidDateRange},
		{"malformed check-in", "10/06/2024", "2024-06-13", "checkInDate", InvalidDateRange},
		{"malformed check-out", "2024-06-10", "tomorrow", "checkOutDate", InvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.CheckInDate = tt.in
			req.CheckOutDate = tt.out

			_, err := New().BookingRequest(req, today)
			errs, ok := AsErrors(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, errs[tt.field].Code)
		})
	}
}

func TestBookingRequest_CardRules(t *testing.T) {
	v := New()

	for _, n := range []string{"4111111111111111", "4111 1111 1111 1111", " 4111111111111111 "} {
		req := validRequest()
		req.CardNumber = n
		_, err := v.BookingRequest(req, today)
		assert.NoError(t, err, n)
	}
	for _, n := range []string{"", "411111111111111", "41111111111111112", "4111-1111-1111-1111", "abcdabcdabcdabcd"} {
		req := validRequest()
		req.CardNumber = n
		_, err := v.BookingRequest(req, today)
		errs, _ := AsErrors(err)
		assert.Equal(t, InvalidCardNumber, errs["cardNumber"].Code, n)
	}

	for _, e := range []string{"01/25", "12/99"} {
		req := validRequest()
		req.ExpirationDate = e
		_, err := v.BookingRequest(req, today)
		assert.NoError(t, err, e)
	}
	for _, e := range []string{"00/25", "1/25", "12/2025", "12-25"} {
		req := validRequest()
		req.ExpirationDate = e
		_, err := v.BookingRequest(req, today)
		errs, _ := AsErrors(err)
		assert.Equal(t, InvalidExpiration, errs["expirationDate"].Code, e)
	}

	for _, c := range []string{"123", "1234"} {
		req := validRequest()
		req.CVV = c
		_, err := v.BookingRequest(req, today)
		assert.NoError(t, err, c)
	}
	for _, c := range []string{"12", "12345", "12a"} {
		req := validRequest()
		req.CVV = c
		_, err := v.BookingRequest(req, today)
		errs, _ := AsErrors(err)
		assert.Equal(t, InvalidCvv, errs["cvv"].Code, c)
	}
}

func TestStoreFields(t *testing.T) {
	errs := StoreFields(models.Booking{})
	assert.Len(t, errs, 4)
	for _, f := range []string{"propertyId", "email", "firstName", "lastName"} {
		assert.Equal(t, MissingRequiredField, errs[f].Code, f)
	}

	ok := StoreFields(models.Booking{PropertyID: 1, Email: "a@b.c", FirstName: "A", LastName: "B"})
	assert.Empty(t, ok)
}

func TestErrors_ErrorIsSorted(t *testing.T) {
	errs := Errors{}
	errs.add("phone", RequiredField, "Phone is required")
	errs.add("email", RequiredField, "Email is required")
	errs.add("email", InvalidCvv, "ignored")

	assert.Equal(t, "validation failed: email: Email is required; phone: Phone is required", errs.Error())
}
