package domain

import "strings"

type (
	Product struct {
		ProductID   string
		Name        string
		Price       float64
		Rating      float64
		Popularity  float64
		Size        string
		Color       string
		Category    string
		SalesStatus bool
		Blocks      []string
		ImageURL    string
	}
)

// InBlock reports whether the product is tagged for the given
// home-page section.
func (p Product) InBlock(tag string) bool {
	for _, b := range p.Blocks {
		if b == tag {
			return true
		}
	}
	return false
}

// SizeOptions returns the selectable size variants for the detail view.
// The catalog field may hold a single value or a comma separated list.
func (p Product) SizeOptions() []string {
	return splitVariants(p.Size)
}

// ColorOptions returns the selectable color variants for the detail view.
func (p Product) ColorOptions() []string {
	return splitVariants(p.Color)
}

func splitVariants(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	opts := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			opts = append(opts, s)
		}
	}
	return opts
}

// SizeGroupSML is the sentinel size filter value matching
// any of the S, M and L sizes.
const SizeGroupSML = "SL"

// Filters holds the active catalog constraints.
// The zero value passes every product.
type Filters struct {
	Size      string
	Color     string
	Category  string
	SalesOnly bool
}

type SortKey string

const (
	SortDefault    SortKey = "default"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRating     SortKey = "rating"
	SortPopularity SortKey = "popularity"
)

// ParseSortKey maps a raw sort value to a [SortKey],
// falling back to [SortDefault] for empty or unknown values.
func ParseSortKey(v string) SortKey {
	switch k := SortKey(v); k {
	case SortPriceAsc, SortPriceDesc, SortRating, SortPopularity:
		return k
	default:
		return SortDefault
	}
}
