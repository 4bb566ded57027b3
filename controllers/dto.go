package controllers

import (
	"strings"

	"rental-backend/models"
)

// flatAddress lets the booking form post billing fields at the top level.
type flatAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (f flatAddress) isZero() bool {
	return strings.TrimSpace(f.Street+f.City+f.State+f.ZipCode+f.Country) == ""
}

// billingAddress prefers the nested object and falls back to flat fields.
func billingAddress(nested models.BillingAddress, flat flatAddress) models.BillingAddress {
	if nested != (models.BillingAddress{}) || flat.isZero() {
		return nested
	}
	return models.BillingAddress(flat)
}

// CheckoutPayload is the booking form as sent to quote and checkout.
type CheckoutPayload struct {
	models.BookingRequest
	flatAddress
}

func (p CheckoutPayload) request() models.BookingRequest {
	req := p.BookingRequest
	req.BillingAddress = billingAddress(p.BookingRequest.BillingAddress, p.flatAddress)
	return req
}

// BookingPayload is a fully priced booking record submitted by a client.
type BookingPayload struct {
	PropertyID   models.PropertyID `json:"propertyId"`
	PropertyName string            `json:"propertyName"`
	models.BookingRequest
	TotalNights   int     `json:"totalNights"`
	PricePerNight float64 `json:"pricePerNight"`
	BookingFee    float64 `json:"bookingFee"`
	TotalPrice    float64 `json:"totalPrice"`
	flatAddress
}

func (p BookingPayload) booking() models.Booking {
	return models.Booking{
		PropertyID:     p.PropertyID,
		PropertyName:   p.PropertyName,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		CheckInDate:    p.CheckInDate,
		CheckOutDate:   p.CheckOutDate,
		Guests:         p.Guests,
		TotalNights:    p.TotalNights,
		PricePerNight:  p.PricePerNight,
		BookingFee:     p.BookingFee,
		TotalPrice:     p.TotalPrice,
		CardNumber:     p.CardNumber,
		ExpirationDate: p.ExpirationDate,
		CVV:            p.CVV,
		BillingAddress: billingAddress(p.BookingRequest.BillingAddress, p.flatAddress),
	}
}

type ReviewPayload struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Helpful    int    `json:"helpful"`
}
