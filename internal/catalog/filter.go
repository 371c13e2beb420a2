package catalog

import (
	"strconv"
	"strings"

	"sweetshop-web/internal/models"
)

// FilterCriteria is the transient set of filter inputs a catalog view holds.
// Price bounds stay raw strings: a bound that does not parse as a number is
// treated as absent, never as an error.
type FilterCriteria struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
}

// IsZero reports whether no criterion is set
func (c FilterCriteria) IsZero() bool {
	return c.Search == "" && c.Category == "" && c.MinPrice == "" && c.MaxPrice == ""
}

// Filter derives the visible list from a snapshot. Criteria compose
// conjunctively: case-insensitive substring match of the search term against
// name or category, exact category equality, then the inclusive price range.
// The result is always an order-preserving subsequence of the snapshot; with
// no criteria set it is the full snapshot.
func Filter(snapshot []models.Sweet, c FilterCriteria) []models.Sweet {
	term := strings.ToLower(c.Search)
	minPrice, hasMin := parsePrice(c.MinPrice)
	maxPrice, hasMax := parsePrice(c.MaxPrice)

	result := make([]models.Sweet, 0, len(snapshot))
	for _, s := range snapshot {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.Category), term) {
			continue
		}
		if c.Category != "" && s.Category != c.Category {
			continue
		}
		if hasMin && s.Price < minPrice {
			continue
		}
		if hasMax && s.Price > maxPrice {
			continue
		}
		result = append(result, s)
	}
	return result
}

// Categories returns the distinct category values present in the snapshot,
// in first-occurrence order, for the category filter's choices
func Categories(snapshot []models.Sweet) []string {
	seen := make(map[string]bool, len(snapshot))
	categories := make([]string, 0, len(snapshot))
	for _, s := range snapshot {
		if !seen[s.Category] {
			seen[s.Category] = true
			categories = append(categories, s.Category)
		}
	}
	return categories
}

func parsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
