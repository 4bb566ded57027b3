package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DateLayout is the calendar-date format used for check-in and check-out.
const DateLayout = "2006-01-02"

type BillingAddress struct {
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	ZipCode string `gorm:"size:32" json:"zipCode"`
	Country string `gorm:"size:100" json:"country"`
}

// BookingRequest is what a guest fills in on the booking form.
// Tags are evaluated by the validation package.
type BookingRequest struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank"`
	Phone     string `json:"phone" validate:"notblank"`

	CheckInDate  string `json:"checkInDate" validate:"notblank"`
	CheckOutDate string `json:"checkOutDate" validate:"notblank"`
	Guests       int    `json:"guests" validate:"min=1"`

	CardNumber     string `json:"cardNumber" validate:"cardnumber"`
	ExpirationDate string `json:"expirationDate" validate:"cardexpiry"`
	CVV            string `json:"cvv" validate:"cvv"`

	BillingAddress BillingAddress `json:"billingAddress"`
}

// Booking is the persisted booking record.
type Booking struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	PropertyID   PropertyID `gorm:"column:property_id;index" json:"propertyId"`
	PropertyName string     `gorm:"size:255" json:"propertyName"`

	FirstName string `gorm:"size:150" json:"firstName"`
	LastName  string `gorm:"size:150" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:64" json:"phone"`

	CheckInDate  string `gorm:"size:10" json:"checkInDate"`
	CheckOutDate string `gorm:"size:10" json:"checkOutDate"`
	Guests       int    `json:"guests"`

	TotalNights   int     `json:"totalNights"`
	PricePerNight float64 `json:"pricePerNight"`
	BookingFee    float64 `json:"bookingFee"`
	TotalPrice    float64 `json:"totalPrice"`

	CardNumber     string `gorm:"size:32" json:"cardNumber"`
	ExpirationDate string `gorm:"size:8" json:"expirationDate"`
	CVV            string `gorm:"column:cvv;size:8" json:"cvv"`

	BillingAddress BillingAddress `gorm:"embedded;embeddedPrefix:billing_" json:"billingAddress"`

	Status    BookingStatus `gorm:"size:16;index" json:"status"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
}
