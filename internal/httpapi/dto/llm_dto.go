package dto

// SummaryRequest: payload for POST /generate-summary
type SummaryRequest struct {
	BookContent string `json:"book_content" binding:"required"`
}

// SummaryResponse: generated summary for the submitted content
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// RecommendationResponse: generated recommendations for a prompt
type RecommendationResponse struct {
	RecommendBook string `json:"recommend_book"`
}
