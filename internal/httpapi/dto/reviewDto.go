package dto

import (
	"bookhub/internal/httpapi/models"
)

// CreateReviewDTO used for POST /books/:book_id/reviews. The book id in the
// path wins over the one in the body.
type CreateReviewDTO struct {
	BookID     int64   `json:"book_id"`
	UserID     int64   `json:"user_id" binding:"required"`
	ReviewText string  `json:"review_text" binding:"required"`
	Rating     float64 `json:"rating"` // no bound enforced
}

// ReviewResponse DTO for responses
type ReviewResponse struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	UserID     int64   `json:"user_id"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
}

func (d CreateReviewDTO) ToModel(bookID int64) models.Review {
	return models.Review{
		BookID:     bookID,
		UserID:     d.UserID,
		ReviewText: d.ReviewText,
		Rating:     d.Rating,
	}
}

func FromReviewToResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
	}
}
