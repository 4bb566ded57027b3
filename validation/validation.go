// Package validation holds the booking rules shared by the pricing model and the
// booking store boundary, so the two never drift apart.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"rental-backend/models"
)

type Code string

const (
	RequiredField        Code = "RequiredField"
	InvalidDateRange     Code = "InvalidDateRange"
	InvalidGuestCount    Code = "InvalidGuestCount"
	InvalidCardNumber    Code = "InvalidCardNumber"
	InvalidExpiration    Code = "InvalidExpiration"
	InvalidCvv           Code = "InvalidCvv"
	MissingRequiredField Code = "MissingRequiredField"
)

type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errors maps a JSON field name to the first rule it violated.
type Errors map[string]FieldError

func (e Errors) add(field string, code Code, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = FieldError{Code: code, Message: msg}
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f].Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors reports whether err carries field-level validation errors.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// tag -> code/message for the struct-tag rules on models.BookingRequest
var tagRules = map[string]FieldError{
	"cardnumber": {InvalidCardNumber, "Valid card number is required (16 digits)"},
	"cardexpiry": {InvalidExpiration, "Format: MM/YY"},
	"cvv":        {InvalidCvv, "CVV is required (3-4 digits)"},
}

var requiredMessages = map[string]string{
	"firstName":    "First name is required",
	"lastName":     "Last name is required",
	"email":        "Email is required",
	"phone":        "Phone is required",
	"checkInDate":  "Check-in date is required",
	"checkOutDate": "Check-out date is required",
}

// Validator evaluates booking requests as a full batch.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return IsCardNumber(fl.Field().String())
	})
	mustRegister(v, "cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "cvv", func(fl validator.FieldLevel) bool {
		return cvvRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// IsCardNumber accepts exactly 16 digits once whitespace is stripped.
func IsCardNumber(s string) bool {
	return cardNumberRe.MatchString(strings.Join(strings.Fields(s), ""))
}

// Stay is a parsed, validated date range.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// BookingRequest validates every rule and returns the parsed stay when all pass.
// today is the caller's current calendar date; check-in may not precede it.
func (val *Validator) BookingRequest(req models.BookingRequest, today time.Time) (Stay, error) {
	errs := Errors{}

	if err := val.v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Stay{}, fmt.Errorf("validate booking request: %w", err)
		}
		for _, fe := range verrs {
			code, msg := codeFor(fe)
			errs.add(fe.Field(), code, msg)
		}
	}

	stay, dateErrs := checkStay(req, today)
	for field, fe := range dateErrs {
		errs.add(field, fe.Code, fe.Message)
	}

	if len(errs) > 0 {
		return Stay{}, errs
	}
	return stay, nil
}

func codeFor(fe validator.FieldError) (Code, string) {
	if rule, ok := tagRules[fe.Tag()]; ok {
		return rule.Code, rule.Message
	}
	if fe.Field() == "guests" {
		return InvalidGuestCount, "At least 1 guest is required"
	}
	if msg, ok := requiredMessages[fe.Field()]; ok {
		return RequiredField, msg
	}
	return RequiredField, fe.Field() + " is required"
}

func checkStay(req models.BookingRequest, today time.Time) (Stay, Errors) {
	errs := Errors{}
	inRaw := strings.TrimSpace(req.CheckInDate)
	outRaw := strings.TrimSpace(req.CheckOutDate)
	if inRaw == "" || outRaw == "" {
		// blank dates are already reported as required
		return Stay{}, errs
	}

	checkIn, inErr := ParseDate(inRaw)
	if inErr != nil {
		errs.add("checkInDate", InvalidDateRange, "Check-in date must be YYYY-MM-DD")
	}
	checkOut, outErr := ParseDate(outRaw)
	if outErr != nil {
		errs.add("checkOutDate", InvalidDateRange, "Check-out date must be YYYY-MM-DD")
	}
	if inErr != nil || outErr != nil {
		return Stay{}, errs
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(day) {
		errs.add("checkInDate", InvalidDateRange, "Check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		errs.add("checkOutDate", InvalidDateRange, "Check-out date must be after check-in date")
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, errs
}

// ParseDate reads a calendar date with no time-of-day component.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, strings.TrimSpace(s), time.UTC)
}

// StoreFields is the server-side check applied to every record the booking
// store accepts, independent of how the record was priced.
func StoreFields(b models.Booking) Errors {
	errs := Errors{}
	if b.PropertyID == 0 {
		errs.add("propertyId", MissingRequiredField, "Property is required")
	}
	if strings.TrimSpace(b.Email) == "" {
		errs.add("email", MissingRequiredField, "Email is required")
	}
	if strings.TrimSpace(b.FirstName) == "" {
		errs.add("firstName", MissingRequiredField, "First name is required")
	}
	if strings.TrimSpace(b.LastName) == "" {
		errs.add("lastName", MissingRequiredField, "Last name is required")
	}
	return errs
}
