package handler

import (
	"net/http"
	"strings"

	"bookhub/internal/httpapi/dto"
	"bookhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type LLMHandler struct {
	svc service.LLMService
}

func NewLLMHandler(svc service.LLMService) *LLMHandler {
	return &LLMHandler{svc: svc}
}

// GenerateSummary handles POST /generate-summary
func (h *LLMHandler) GenerateSummary(c *gin.Context) {
	var req dto.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.svc.SummarizeContent(c.Request.Context(), req.BookContent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary."})
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary})
}

// Recommend handles GET /recommendations?prompt=...
func (h *LLMHandler) Recommend(c *gin.Context) {
	prompt := strings.TrimSpace(c.Query("prompt"))
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt query parameter is required"})
		return
	}

	recommendations, err := h.svc.Recommend(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RecommendationResponse{RecommendBook: recommendations})
}
