package handlers

import (
	"net/http"

	"github.com/bookwise/recommender/internal/models"
	"github.com/bookwise/recommender/internal/repository"
	"github.com/bookwise/recommender/internal/util"
	"github.com/gin-gonic/gin"
)

// GenreGroup is one genre's slice of a grouped catalogue response
type GenreGroup struct {
	Genre string         `json:"genre"`
	Books []*models.Book `json:"books"`
	Count int            `json:"count"`
}

// AppliedFilters echoes the normalised filters back to the client
type AppliedFilters struct {
	Search       string `json:"search"`
	SortBy       string `json:"sortBy"`
	SortOrder    string `json:"sortOrder"`
	MinRating    *int   `json:"minRating"`
	MaxRating    *int   `json:"maxRating"`
	Availability string `json:"availability"`
}

// GetGenres lists the distinct genres in the catalogue
// GET /api/genres
func (h *Handlers) GetGenres(c *gin.Context) {
	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	genres, err := h.books.ListGenres(ctx)
	if err != nil {
		util.RespondFailure(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"genres":  nonNil(genres),
	})
}

// GetBooks browses the catalogue with optional filters
// GET /api/books?genre=&search=&firstLetter=&minRating=&maxRating=&availability=&sortBy=&sortOrder=&showAll=&genresOnly=
func (h *Handlers) GetBooks(c *gin.Context) {
	if util.ParseBool(c.Query("genresOnly")) {
		h.GetGenres(c)
		return
	}

	ctx, cancel := h.requestContext(c.Request.Context())
	defer cancel()

	genres, err := h.books.ListGenres(ctx)
	if err != nil {
		util.RespondFailure(c, toAPIError(err))
		return
	}

	showAll := util.ParseBool(c.Query("showAll"))
	selectedGenre := c.Query("genre")

	filter := repository.BookFilter{
		Search:       c.Query("search"),
		FirstLetter:  c.Query("firstLetter"),
		MinRating:    util.ParseOptionalInt(c.Query("minRating")),
		MaxRating:    util.ParseOptionalInt(c.Query("maxRating")),
		Availability: repository.Availability(c.Query("availability")),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}
	if !showAll {
		filter.Genre = selectedGenre
	}
	filter = filter.Normalize()

	books, err := h.books.SearchBooks(ctx, filter)
	if err != nil {
		util.RespondFailure(c, toAPIError(err))
		return
	}

	resp := gin.H{
		"success": true,
		"genres":  nonNil(genres),
		"filters": AppliedFilters{
			Search:       filter.Search,
			SortBy:       filter.SortBy,
			SortOrder:    filter.SortOrder,
			MinRating:    filter.MinRating,
			MaxRating:    filter.MaxRating,
			Availability: string(filter.Availability),
		},
		"totalCount": len(books),
	}

	// A chosen genre or showAll returns a flat list; otherwise books are
	// grouped under their genre
	if showAll || selectedGenre != "" {
		if books == nil {
			books = []*models.Book{}
		}
		resp["books"] = books
		resp["selectedGenre"] = selectedGenre
		resp["showAllBooks"] = showAll
	} else {
		resp["booksByGenre"] = groupByGenre(genres, books)
	}

	c.JSON(http.StatusOK, resp)
}

// groupByGenre buckets books under each genre in order, dropping empty groups
func groupByGenre(genres []string, books []*models.Book) []GenreGroup {
	buckets := make(map[string][]*models.Book, len(genres))
	for _, b := range books {
		buckets[b.Genre] = append(buckets[b.Genre], b)
	}

	groups := []GenreGroup{}
	for _, g := range genres {
		if len(buckets[g]) == 0 {
			continue
		}
		groups = append(groups, GenreGroup{Genre: g, Books: buckets[g], Count: len(buckets[g])})
	}
	return groups
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
