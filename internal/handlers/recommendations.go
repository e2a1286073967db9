package handlers

import (
	"net/http"

	"github.com/bookwise/recommender/internal/recommendations"
	"github.com/bookwise/recommender/internal/util"
	"github.com/gin-gonic/gin"
)

// SourceBook identifies the book recommendations were computed for
type SourceBook struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// RecommendedBook is a book's public fields plus its similarity score
type RecommendedBook struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Genre           string  `json:"genre"`
	CoverURL        string  `json:"coverUrl"`
	CoverColor      string  `json:"coverColor"`
	Rating          int     `json:"rating"`
	TotalCopies     int     `json:"totalCopies"`
	AvailableCopies int     `json:"availableCopies"`
	Description     string  `json:"description"`
	VideoURL        *string `json:"videoUrl"`
	Summary         *string `json:"summary"`
	SimilarityScore float64 `json:"similarityScore"`
}

// RecommendationsResponse is the body of a successful recommendation request
type RecommendationsResponse struct {
	Success         bool              `json:"success"`
	SourceBook      SourceBook        `json:"sourceBook"`
	Recommendations []RecommendedBook `json:"recommendations"`
}

// GetRecommendations returns books with genres similar to the given book
// GET /api/recommendations/:bookId?limit=N
func (h *Handlers) GetRecommendations(c *gin.Context) {
	bookID := c.Param("bookId")
	limit := h.engine.ParseLimit(c.Query("limit"))

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	result, err := h.engine.Recommend(ctx, bookID, limit)
	if err != nil {
		util.RespondWithAPIError(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, newRecommendationsResponse(result))
}

func newRecommendationsResponse(result *recommendations.Result) RecommendationsResponse {
	items := make([]RecommendedBook, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		b := r.Book
		items = append(items, RecommendedBook{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			Genre:           b.Genre,
			CoverURL:        b.CoverURL,
			CoverColor:      b.CoverColor,
			Rating:          b.Rating,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			Description:     b.Description,
			VideoURL:        b.VideoURL,
			Summary:         b.Summary,
			SimilarityScore: r.Score,
		})
	}

	return RecommendationsResponse{
		Success: true,
		SourceBook: SourceBook{
			ID:    result.Source.ID,
			Title: result.Source.Title,
			Genre: result.Source.Genre,
		},
		Recommendations: items,
	}
}
