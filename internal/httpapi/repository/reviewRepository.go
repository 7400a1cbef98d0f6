package repository

import (
	"context"

	"bookhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByBook(ctx context.Context, bookID int64) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByBook retrieves all reviews for a specific book
func (r *reviewRepository) GetByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id asc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
