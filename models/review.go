package models

import "time"

type Review struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	PropertyID PropertyID `gorm:"column:property_id;index" json:"propertyId"`
	UserID     string     `gorm:"size:64" json:"userId"`
	UserName   string     `gorm:"size:255" json:"userName"`
	UserAvatar string     `gorm:"size:512" json:"userAvatar,omitempty"`
	Rating     int        `json:"rating"`
	Comment    string     `gorm:"type:text" json:"comment"`
	Date       time.Time  `gorm:"index" json:"date"`
	Helpful    int        `gorm:"default:0" json:"helpful"`
}

// ReviewStats is derived on every read and never stored.
type ReviewStats struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	RatingCounts  map[int]int `json:"ratingCounts"`
}
