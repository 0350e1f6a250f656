package service

import (
	"slices"
	"strings"

	"github.com/voyago/storefront/internal/core/domain"
)

// ResolveSearch maps a free-text query to a single product. The rules
// are tried in order over the whole catalog and the first rule that
// produces any match wins:
//
//  1. exact full-name match, case-insensitive and trimmed;
//  2. every query word present as a whole word of the product name,
//     order-independent;
//  3. a one-word query equal to any whole word of the name.
//
// Within a rule the first product in catalog iteration order is taken.
func ResolveSearch(query string, products []domain.Product) (domain.Product, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.Product{}, false
	}
	queryWords := strings.Fields(q)

	for _, p := range products {
		if strings.ToLower(p.Name) == q {
			return p, true
		}
	}

	for _, p := range products {
		if containsAllWords(nameWords(p), queryWords) {
			return p, true
		}
	}

	if len(queryWords) == 1 {
		for _, p := range products {
			if slices.Contains(nameWords(p), queryWords[0]) {
				return p, true
			}
		}
	}

	return domain.Product{}, false
}

func nameWords(p domain.Product) []string {
	return strings.Fields(strings.ToLower(p.Name))
}

func containsAllWords(words, queryWords []string) bool {
	for _, w := range queryWords {
		if !slices.Contains(words, w) {
			return false
		}
	}
	return true
}
