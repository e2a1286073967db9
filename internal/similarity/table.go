// Package similarity scores how closely two genre strings are related.
//
// A Table holds hand-tuned weights between genre labels. It is built once at
// start-up and never modified, so a single *Table can be shared by every
// request goroutine without locking.
package similarity

import (
	"fmt"
	"sort"
	"strings"
)

// Table maps a genre label to related labels and their similarity in (0,1].
// Entries are not assumed to be symmetric; Lookup checks both directions.
type Table struct {
	relations map[string]map[string]float64
	source    string
}

// NewTable copies and normalises relations into an immutable Table.
// Labels are lowercased and whitespace-collapsed; weights must lie in (0,1].
func NewTable(relations map[string]map[string]float64, source string) (*Table, error) {
	normalised := make(map[string]map[string]float64, len(relations))

	for genre, related := range relations {
		key := NormalizeLabel(genre)
		if key == "" {
			return nil, fmt.Errorf("similarity table has an empty genre label")
		}

		inner, ok := normalised[key]
		if !ok {
			inner = make(map[string]float64, len(related))
			normalised[key] = inner
		}

		for other, weight := range related {
			otherKey := NormalizeLabel(other)
			if otherKey == "" {
				return nil, fmt.Errorf("genre %q has an empty related label", genre)
			}
			if weight <= 0 || weight > 1 {
				return nil, fmt.Errorf("weight %v for %q -> %q is outside (0,1]", weight, genre, other)
			}
			inner[otherKey] = weight
		}
	}

	return &Table{relations: normalised, source: source}, nil
}

// Lookup returns the weight for a -> b, falling back to b -> a.
// Both labels must already be normalised.
func (t *Table) Lookup(a, b string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	if w, ok := t.relations[a][b]; ok {
		return w, true
	}
	if w, ok := t.relations[b][a]; ok {
		return w, true
	}
	return 0, false
}

// Source describes where the table came from ("default" or a file path)
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Len returns the number of directed relations in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, related := range t.relations {
		n += len(related)
	}
	return n
}

// Genres returns every label that appears in the table, sorted
func (t *Table) Genres() []string {
	if t == nil {
		return nil
	}

	seen := make(map[string]struct{})
	for genre, related := range t.relations {
		seen[genre] = struct{}{}
		for other := range related {
			seen[other] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// NormalizeLabel lowercases a genre label and collapses internal whitespace
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
