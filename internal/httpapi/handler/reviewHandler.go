package handler

import (
	"context"
	"errors"
	"net/http"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:book_id/reviews", h.Create)
	rg.GET("/:book_id/reviews", h.List)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	review := in.ToModel(id)
	if err := h.svc.Create(ctx, id, &review); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReviewToResponse(review))
}

func (h *ReviewHandler) List(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), crudTimeout)
	defer cancel()

	reviews, err := h.svc.ListByBook(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// a book with zero reviews is an empty list, not a 404
	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, dto.FromReviewToResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
