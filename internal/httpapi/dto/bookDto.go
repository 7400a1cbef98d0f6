package dto

import (
	"bookhub/internal/httpapi/models"
)

// CreateBookDTO used for POST /books/
type CreateBookDTO struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Genre         string `json:"genre" binding:"required"`
	YearPublished int    `json:"year_published" binding:"required"`
}

// UpdateBookDTO used for PUT /books/:book_id (partial updates allowed)
type UpdateBookDTO struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	YearPublished *int    `json:"year_published,omitempty"`
	Summary       *string `json:"summary,omitempty"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	YearPublished int     `json:"year_published"`
	Summary       *string `json:"summary,omitempty"`
}

// Converters
func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:         d.Title,
		Author:        d.Author,
		Genre:         d.Genre,
		YearPublished: d.YearPublished,
	}
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.Author != nil {
		b.Author = *d.Author
	}
	if d.Genre != nil {
		b.Genre = *d.Genre
	}
	if d.YearPublished != nil {
		b.YearPublished = *d.YearPublished
	}
	if d.Summary != nil {
		b.Summary = d.Summary
	}
}

func FromModelToResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Summary:       b.Summary,
	}
}
