package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/models"
	"bookhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidBook  = errors.New("invalid book")
)

type BookService interface {
	Create(ctx context.Context, b *models.Book) error
	GetAll(ctx context.Context, skip, limit int) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, id int64, upd dto.UpdateBookDTO) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo repository.BookRepository
	llm  LLMService
}

func NewBookService(repo repository.BookRepository, llm LLMService) BookService {
	return &bookService{repo: repo, llm: llm}
}

// Create generates the summary from title and author before persisting. A
// failed generation fails the whole creation; no summary-less book is stored.
func (s *bookService) Create(ctx context.Context, b *models.Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	}

	summary, err := s.llm.SummarizeBook(ctx, b.Title, b.Author)
	if err != nil {
		return err
	}
	b.Summary = &summary

	return s.repo.Create(ctx, b)
}

func (s *bookService) GetAll(ctx context.Context, skip, limit int) ([]models.Book, error) {
	return s.repo.GetAll(ctx, skip, limit)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

// Update applies only the fields present in the request, then re-reads the
// row so the caller sees exactly what was stored.
func (s *bookService) Update(ctx context.Context, id int64, upd dto.UpdateBookDTO) (*models.Book, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.ApplyTo(existing)

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookNotFound
	}
	return nil
}
