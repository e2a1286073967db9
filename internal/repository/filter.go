package repository

import "strings"

// Availability narrows catalogue results by copy availability
type Availability string

const (
	AvailabilityAll         Availability = "all"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// sortColumns whitelists the columns a caller may sort by
var sortColumns = map[string]string{
	"title":           "title",
	"author":          "author",
	"rating":          "rating",
	"createdAt":       "created_at",
	"availableCopies": "available_copies",
}

// BookFilter describes a catalogue query
type BookFilter struct {
	Genre        string
	Search       string // case-insensitive substring of title or author
	FirstLetter  string
	MinRating    *int
	MaxRating    *int
	Availability Availability
	SortBy       string
	SortOrder    string
}

// Normalize replaces unknown sort and availability values with defaults
func (f BookFilter) Normalize() BookFilter {
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}
	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}
	switch f.Availability {
	case AvailabilityAvailable, AvailabilityUnavailable:
	default:
		f.Availability = AvailabilityAll
	}
	f.Search = strings.TrimSpace(f.Search)
	f.FirstLetter = strings.TrimSpace(f.FirstLetter)
	return f
}

func (f BookFilter) orderClause() string {
	return sortColumns[f.SortBy] + " " + strings.ToUpper(f.SortOrder) + ", id ASC"
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match literally in a LIKE pattern using ESCAPE '!'
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
