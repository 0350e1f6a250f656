package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/port"
)

var _ port.CatalogViewer = (*CatalogService)(nil)
var _ port.ProductFinder = (*CatalogService)(nil)
var _ port.ProductSearcher = (*CatalogService)(nil)
var _ port.HomeViewer = (*CatalogService)(nil)

// Home page section tags.
const (
	BlockSelectedProducts = "Selected Products"
	BlockNewArrivals      = "New Products Arrival"
)

const (
	homeSectionLimit = 4
	bestSetsCategory = "luggage sets"
	bestSetsLimit    = 5
	relatedLimit     = 4
)

// A CatalogService owns the product set loaded once at start and
// answers all read-only catalog queries. The set is immutable after
// construction, so reads need no locking.
type CatalogService struct {
	products []domain.Product
	byID     map[string]domain.Product
	pageSize int
}

// NewCatalogService fetches the product document through the provider.
// A fetch failure degrades to an empty catalog: the storefront renders
// empty result states instead of failing to start.
func NewCatalogService(
	ctx context.Context, provider port.ProductsProvider, pageSize int,
) *CatalogService {
	const op = "NewCatalogService"
	log := slog.With("op", op)

	ps, err := provider.FetchProducts(ctx)
	if err != nil {
		log.Warn("failed to fetch products, catalog is empty", "err", err)
		ps = nil
	}

	byID := make(map[string]domain.Product, len(ps))
	for _, p := range ps {
		byID[p.ProductID] = p
	}
	log.Info("catalog is loaded", "nProducts", len(ps))

	return &CatalogService{products: ps, byID: byID, pageSize: pageSize}
}

func (s *CatalogService) ViewCatalog(
	ctx context.Context, q domain.CatalogQuery,
) (domain.CatalogPage, error) {
	const op = "CatalogService.ViewCatalog"

	if err := ctx.Err(); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return ComputeView(s.products, q.Filters, q.Sort, q.Page, s.pageSize), nil
}

func (s *CatalogService) FindProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "CatalogService.FindProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := s.byID[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return p, nil
}

// RelatedProducts returns up to n random products excluding the given
// one, for the "You May Also Like" strip.
func (s *CatalogService) RelatedProducts(
	ctx context.Context, productID string, n int,
) ([]domain.Product, error) {
	const op = "CatalogService.RelatedProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if n <= 0 {
		n = relatedLimit
	}

	others := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ProductID != productID {
			others = append(others, p)
		}
	}
	rand.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > n {
		others = others[:n]
	}
	return others, nil
}

func (s *CatalogService) SearchProduct(
	ctx context.Context, query string,
) (domain.Product, error) {
	const op = "CatalogService.SearchProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := ResolveSearch(query, s.products)
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) ViewHome(ctx context.Context) (domain.HomeView, error) {
	const op = "CatalogService.ViewHome"

	if err := ctx.Err(); err != nil {
		return domain.HomeView{}, fmt.Errorf("%s: %w", op, err)
	}

	v := domain.HomeView{
		SelectedProducts: s.blockSection(BlockSelectedProducts),
		NewArrivals:      s.blockSection(BlockNewArrivals),
		BestSets:         s.bestSets(),
	}
	return v, nil
}

func (s *CatalogService) blockSection(tag string) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if p.InBlock(tag) {
			out = append(out, p)
			if len(out) == homeSectionLimit {
				break
			}
		}
	}
	return out
}

func (s *CatalogService) bestSets() []domain.Product {
	sets := applyFilters(s.products, domain.Filters{Category: bestSetsCategory})
	sets = sortProducts(sets, domain.SortRating)
	if len(sets) > bestSetsLimit {
		sets = sets[:bestSetsLimit]
	}
	return sets
}

// ComputeView applies the active filters, sorts a copy of the result
// and slices out the 1-indexed page window. TotalCount is the
// post-filter count and does not depend on the page arguments. A page
// beyond the available range yields an empty window, clamping the
// requested page is the pagination controls' job.
func ComputeView(
	products []domain.Product,
	f domain.Filters,
	sort domain.SortKey,
	page, pageSize int,
) domain.CatalogPage {
	filtered := applyFilters(products, f)
	sorted := sortProducts(filtered, sort)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start < 0 || start > len(sorted) {
		start, end = 0, 0
	} else if end > len(sorted) {
		end = len(sorted)
	}

	return domain.CatalogPage{
		Items:      sorted[start:end],
		TotalCount: len(sorted),
		Page:       page,
		PageSize:   pageSize,
	}
}

// All active predicates must hold (logical AND), inactive predicates
// always pass.
func applyFilters(ps []domain.Product, f domain.Filters) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if matchesFilters(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilters(p domain.Product, f domain.Filters) bool {
	return matchesSize(p, f.Size) &&
		(f.Color == "" || p.Color == f.Color) &&
		(f.Category == "" || p.Category == f.Category) &&
		(!f.SalesOnly || p.SalesStatus)
}

func matchesSize(p domain.Product, size string) bool {
	switch size {
	case "":
		return true
	case domain.SizeGroupSML:
		// group selection covers the three concrete sizes
		return p.Size == "S" || p.Size == "M" || p.Size == "L"
	default:
		return p.Size == size
	}
}

// sortProducts never mutates its input. The sort is stable: equal-key
// products keep their relative input order, that is the only tie-break.
func sortProducts(ps []domain.Product, key domain.SortKey) []domain.Product {
	sorted := slices.Clone(ps)
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortRating:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortPopularity:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Popularity, a.Popularity)
		})
	}
	return sorted
}
