package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/validation"
)

// Quote is the price breakdown shown before a booking is submitted.
// TotalPrice is what gets charged; the discounted figures are display only.
type Quote struct {
	PropertyID      models.PropertyID `json:"propertyId"`
	Nights          int               `json:"nights"`
	PricePerNight   float64           `json:"pricePerNight"`
	Subtotal        float64           `json:"subtotal"`
	BookingFee      float64           `json:"bookingFee"`
	TotalPrice      float64           `json:"totalPrice"`
	DiscountPercent int               `json:"discountPercent"`
	DiscountAmount  float64           `json:"discountAmount"`
	DiscountedTotal float64           `json:"discountedTotal"`
}

// PricingModel validates a booking request against a property and prices it.
// It never performs I/O.
type PricingModel struct {
	validator *validation.Validator
	now       func() time.Time
}

func NewPricingModel(v *validation.Validator, now func() time.Time) *PricingModel {
	if v == nil {
		v = validation.New()
	}
	if now == nil {
		now = time.Now
	}
	return &PricingModel{validator: v, now: now}
}

const secondsPerDay = 24 * 60 * 60

// Nights rounds partial days up. It works on Unix seconds because
// time.Duration overflows for stays longer than ~292 years.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(float64(checkOut.Unix()-checkIn.Unix()) / secondsPerDay))
}

// BookingFee is 10% of one night, rounded half up.
func BookingFee(pricePerNight float64) float64 {
	return math.Round(pricePerNight / 10)
}

func TotalPrice(pricePerNight float64, nights int) float64 {
	return math.Round(pricePerNight*float64(nights)) + BookingFee(pricePerNight)
}

// Quote validates req and returns the breakdown for the stay.
func (m *PricingModel) Quote(property models.Property, req models.BookingRequest) (Quote, error) {
	stay, err := m.validator.BookingRequest(req, m.now().UTC())
	if err != nil {
		return Quote{}, err
	}
	return quoteFor(property, stay)
}

// Build validates req and assembles a pending booking record. The id and
// creation time are left for the store to assign.
func (m *PricingModel) Build(property models.Property, req models.BookingRequest) (models.Booking, Quote, error) {
	q, err := m.Quote(property, req)
	if err != nil {
		return models.Booking{}, Quote{}, err
	}

	b := models.Booking{
		PropertyID:     property.ID,
		PropertyName:   property.Name,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		CheckInDate:    strings.TrimSpace(req.CheckInDate),
		CheckOutDate:   strings.TrimSpace(req.CheckOutDate),
		Guests:         req.Guests,
		TotalNights:    q.Nights,
		PricePerNight:  q.PricePerNight,
		BookingFee:     q.BookingFee,
		TotalPrice:     q.TotalPrice,
		CardNumber:     strings.Join(strings.Fields(req.CardNumber), ""),
		ExpirationDate: req.ExpirationDate,
		CVV:            req.CVV,
		BillingAddress: req.BillingAddress,
		Status:         models.BookingStatusPending,
	}
	return b, q, nil
}

func quoteFor(property models.Property, stay validation.Stay) (Quote, error) {
	pct, err := property.DiscountPercent()
	if err != nil {
		return Quote{}, fmt.Errorf("property %d: %w", property.ID, err)
	}

	nights := Nights(stay.CheckIn, stay.CheckOut)
	subtotal := math.Round(property.Price * float64(nights))
	total := TotalPrice(property.Price, nights)
	discount := math.Round(subtotal * float64(pct) / 100)

	return Quote{
		PropertyID:      property.ID,
		Nights:          nights,
		PricePerNight:   property.Price,
		Subtotal:        subtotal,
		BookingFee:      BookingFee(property.Price),
		TotalPrice:      total,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		DiscountedTotal: total - discount,
	}, nil
}
