package models

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrReviewNotFound   = errors.New("review not found")
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrDuplicateID           = errors.New("record with this id already exists")
)
