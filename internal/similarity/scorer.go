package similarity

import "strings"

const (
	// ExactScore is returned for identical genre labels
	ExactScore = 1.0
	// FloorScore is returned for genres with no known relationship
	FloorScore = 0.1
)

// MatchKind records which rule produced a pairwise score
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchTable    MatchKind = "table"
	MatchOverlap  MatchKind = "overlap"
	MatchFallback MatchKind = "fallback"
)

// Match is the best-scoring sub-genre pair for two genre strings
type Match struct {
	Score float64
	Kind  MatchKind
	Left  string
	Right string
}

// Scorer computes genre similarity against an immutable Table
type Scorer struct {
	table *Table
}

// NewScorer creates a scorer. A nil table behaves like an empty one.
func NewScorer(table *Table) *Scorer {
	return &Scorer{table: table}
}

// Table returns the table the scorer reads from
func (s *Scorer) Table() *Table {
	return s.table
}

// Score returns the similarity of two genre strings in [0.1, 1.0].
// Each string may list several comma-separated genres; the result is the
// score of the most similar pair.
func (s *Scorer) Score(a, b string) float64 {
	return s.Explain(a, b).Score
}

// Explain is Score plus the pair and rule that produced it.
// Ties keep the first pair in input order.
func (s *Scorer) Explain(a, b string) Match {
	left := SplitGenres(a)
	right := SplitGenres(b)

	best := Match{Score: -1}
	for _, l := range left {
		for _, r := range right {
			score, kind := s.pair(l, r)
			if score > best.Score {
				best = Match{Score: score, Kind: kind, Left: l, Right: r}
			}
			if best.Score >= ExactScore {
				return best
			}
		}
	}
	return best
}

func (s *Scorer) pair(a, b string) (float64, MatchKind) {
	if a != "" && a == b {
		return ExactScore, MatchExact
	}

	if w, ok := s.table.Lookup(a, b); ok {
		return w, MatchTable
	}

	if overlap := wordOverlap(a, b); overlap > 0 {
		if overlap < FloorScore {
			overlap = FloorScore
		}
		return overlap, MatchOverlap
	}

	return FloorScore, MatchFallback
}

// SplitGenres splits a comma-separated genre field into normalised labels.
// A field with no labels yields a single empty label so it still scores.
func SplitGenres(field string) []string {
	parts := strings.Split(field, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if label := NormalizeLabel(p); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return []string{""}
	}
	return labels
}

// wordOverlap returns |A ∩ B| / max(|A|, |B|) over the labels' word sets
func wordOverlap(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}

	return float64(shared) / float64(max(len(wordsA), len(wordsB)))
}

func wordSet(label string) map[string]struct{} {
	words := strings.Fields(label)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
