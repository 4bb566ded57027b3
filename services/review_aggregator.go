package services

import (
	"math"

	"rental-backend/models"
)

// AggregateReviews summarises a property's reviews. Ratings outside 1-5 still
// count towards the average but have no histogram bucket.
func AggregateReviews(reviews []models.Review) models.ReviewStats {
	stats := models.ReviewStats{
		RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if _, ok := stats.RatingCounts[r.Rating]; ok {
			stats.RatingCounts[r.Rating]++
		}
	}

	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return stats
}
