package service

import (
	"context"

	"bookhub/internal/httpapi/models"
	"bookhub/internal/httpapi/repository"
)

type ReviewService interface {
	Create(ctx context.Context, bookID int64, review *models.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookSvc    BookService
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookSvc BookService) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookSvc: bookSvc}
}

// Create inserts a review for an existing book. The existence check runs
// first so nothing is inserted for an unknown book id.
func (s *reviewService) Create(ctx context.Context, bookID int64, review *models.Review) error {
	if _, err := s.bookSvc.GetByID(ctx, bookID); err != nil {
		return err
	}
	review.BookID = bookID
	return s.reviewRepo.Create(ctx, review)
}

// ListByBook returns the reviews for an existing book. A book with zero
// reviews yields an empty list, not an error.
func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	if _, err := s.bookSvc.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByBook(ctx, bookID)
}
