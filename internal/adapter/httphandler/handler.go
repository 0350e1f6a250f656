package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/port"
)

// GET /v1/catalog?size=&color=&category=&sales=&sort=&page= (200 OK, 400 Bad request)
// GET /v1/catalog/search?q=query (200 OK, 404 Not found)
// GET /v1/products/{id} (200 OK, 404 Not found)
// GET /v1/home (200 OK)

const notFoundMessage = "Product not found"

type CatalogHandler struct {
	viewer   port.CatalogViewer
	finder   port.ProductFinder
	searcher port.ProductSearcher
	home     port.HomeViewer
	notifier port.Notifier
}

func RegisterCatalog(
	mux *http.ServeMux,
	viewer port.CatalogViewer,
	finder port.ProductFinder,
	searcher port.ProductSearcher,
	home port.HomeViewer,
	notifier port.Notifier,
) {
	h := CatalogHandler{viewer, finder, searcher, home, notifier}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/search", h.SearchProduct)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/home", h.GetHome)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	params := r.URL.Query()
	q := domain.CatalogQuery{
		Filters: domain.Filters{
			Size:      params.Get("size"),
			Color:     params.Get("color"),
			Category:  params.Get("category"),
			SalesOnly: params.Get("sales") == "true",
		},
		Sort: domain.ParseSortKey(params.Get("sort")),
		Page: 1,
	}
	if v := params.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		q.Page = p
	}

	view, err := h.viewer.ViewCatalog(r.Context(), q)
	if err != nil {
		http.Error(w, "failed to view catalog", http.StatusInternalServerError)
		log.Error("failed to view catalog", "err", err)
		return
	}

	// The engine does not clamp, the controls do: a request past the
	// last page lands on the last page.
	if last := pageCount(view.TotalCount, view.PageSize); view.Page > last && last > 0 {
		q.Page = last
		view, err = h.viewer.ViewCatalog(r.Context(), q)
		if err != nil {
			http.Error(w, "failed to view catalog", http.StatusInternalServerError)
			log.Error("failed to view catalog", "err", err)
			return
		}
	}

	writeJSON(w, toCatalogPage(view), log)
}

func (h CatalogHandler) SearchProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.SearchProduct"
	log := slog.With("op", op)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "empty query", http.StatusBadRequest)
		return
	}

	p, err := h.searcher.SearchProduct(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.notifier.Notify(r.Context(), notFoundMessage)
			http.Error(w, notFoundMessage, http.StatusNotFound)
			return
		}
		http.Error(w, "failed to search", http.StatusInternalServerError)
		log.Error("failed to search", "err", err)
		return
	}

	writeJSON(w, toProduct(p), log)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	productID := r.PathValue("id")
	p, err := h.finder.FindProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, notFoundMessage, http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		log.Error("failed to load product", "err", err)
		return
	}

	related, err := h.finder.RelatedProducts(r.Context(), productID, 0)
	if err != nil {
		// the strip is optional, the detail view still renders
		log.Warn("failed to load related products", "err", err)
	}

	detail := ProductDetail{
		Product:      toProduct(p),
		SizeOptions:  p.SizeOptions(),
		ColorOptions: p.ColorOptions(),
		Related:      toProducts(related),
	}
	writeJSON(w, detail, log)
}

func (h CatalogHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetHome"
	log := slog.With("op", op)

	v, err := h.home.ViewHome(r.Context())
	if err != nil {
		http.Error(w, "failed to view home", http.StatusInternalServerError)
		log.Error("failed to view home", "err", err)
		return
	}

	home := HomeView{
		SelectedProducts: toProducts(v.SelectedProducts),
		NewArrivals:      toProducts(v.NewArrivals),
		BestSets:         toProducts(v.BestSets),
	}
	writeJSON(w, home, log)
}

func toCatalogPage(v domain.CatalogPage) CatalogPage {
	page := CatalogPage{
		Items:      toProducts(v.Items),
		TotalCount: v.TotalCount,
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalPages: pageCount(v.TotalCount, v.PageSize),
	}
	if v.TotalCount > 0 {
		page.ResultsStart = (v.Page-1)*v.PageSize + 1
		page.ResultsEnd = min(v.Page*v.PageSize, v.TotalCount)
	}
	return page
}

func pageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func toProduct(p domain.Product) Product {
	return Product{
		ID:          p.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		Rating:      p.Rating,
		Popularity:  p.Popularity,
		Size:        p.Size,
		Color:       p.Color,
		Category:    p.Category,
		SalesStatus: p.SalesStatus,
		Blocks:      p.Blocks,
		ImageURL:    p.ImageURL,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
