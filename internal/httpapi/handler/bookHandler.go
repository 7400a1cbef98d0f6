package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100

	crudTimeout = 5 * time.Second
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Create)
	rg.GET("/", h.List)
	rg.GET("/:book_id", h.Get)
	rg.PUT("/:book_id", h.Update)
	rg.DELETE("/:book_id", h.Delete)
	rg.GET("/:book_id/summary", h.GetSummary)
}

// Create persists a book whose summary is generated from title and author.
// The inference call dominates the latency here, so no short CRUD timeout;
// the llm service applies its own deadline.
func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book := in.ToModel()
	if err := h.svc.Create(c.Request.Context(), &book); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToResponse(book))
}

func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	skip := 0
	limit := defaultListLimit

	if s := c.Query("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			skip = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxListLimit {
			limit = parsed
		}
	}

	list, err := h.svc.GetAll(ctx, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, dto.FromModelToResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	b, err := h.svc.GetByID(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*b))
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var in dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	updated, err := h.svc.Update(ctx, id, in)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToResponse(*updated))
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSummary returns the stored book fields including the generated summary.
func (h *BookHandler) GetSummary(c *gin.Context) {
	h.Get(c)
}

func (h *BookHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	if errors.Is(err, service.ErrInvalidBook) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// bookID parses the :book_id path param, responding 400 itself on garbage.
func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
