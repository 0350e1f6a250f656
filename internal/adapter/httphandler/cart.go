package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/port"
)

// GET    /v1/cart (200 OK)
// POST   /v1/cart/items JSON {"product_id","size","color","quantity"} (201 Created, 400, 404)
// PATCH  /v1/cart/items/{index} JSON {"action"} (200 OK, 400, 409 stale index)
// DELETE /v1/cart/items/{index} (200 OK, 409 stale index)
// DELETE /v1/cart (200 OK)
// POST   /v1/cart/checkout (200 OK)
// GET    /v1/cart/count (200 OK)

// A CartCounter reads the last published badge count.
type CartCounter interface {
	Count() int
	Visible() bool
}

type CartHandler struct {
	cart    port.CartKeeper
	finder  port.ProductFinder
	counter CartCounter
}

func RegisterCart(
	mux *http.ServeMux,
	cart port.CartKeeper,
	finder port.ProductFinder,
	counter CartCounter,
) {
	h := CartHandler{cart, finder, counter}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{index}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{index}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/checkout", h.Checkout)
	mux.HandleFunc("GET /v1/cart/count", h.GetCount)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	v, err := h.cart.Cart(r.Context())
	if err != nil {
		http.Error(w, "failed to read cart", http.StatusInternalServerError)
		log.Error("failed to read cart", "err", err)
		return
	}

	writeJSON(w, toCartView(v), log)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	p, err := h.finder.FindProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, notFoundMessage, http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		log.Error("failed to load product", "err", err)
		return
	}

	err = h.cart.AddToCart(r.Context(), p, req.Size, req.Color, req.Quantity)
	if err != nil {
		http.Error(w, "failed to add to cart", http.StatusInternalServerError)
		log.Error("failed to add to cart", "err", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	log.Info("added to cart", "productID", req.ProductID)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	action := domain.QuantityAction(req.Action)
	if action != domain.QuantityIncrease && action != domain.QuantityDecrease {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), index, action); err != nil {
		h.writeMutationError(w, log, err, "failed to update quantity")
		return
	}

	h.GetCart(w, r)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	if err := h.cart.RemoveItem(r.Context(), index); err != nil {
		h.writeMutationError(w, log, err, "failed to remove item")
		return
	}

	h.GetCart(w, r)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	if err := h.cart.ClearCart(r.Context()); err != nil {
		http.Error(w, "failed to clear cart", http.StatusInternalServerError)
		log.Error("failed to clear cart", "err", err)
		return
	}

	h.GetCart(w, r)
}

func (h CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Checkout"
	log := slog.With("op", op)

	order, err := h.cart.Checkout(r.Context())
	if err != nil {
		http.Error(w, "failed to checkout", http.StatusInternalServerError)
		log.Error("failed to checkout", "err", err)
		return
	}

	resp := CheckoutResponse{OrderRef: order.Ref, Message: domain.CheckoutMessage}
	writeJSON(w, resp, log)
	log.Info("checkout complete", "orderRef", order.Ref)
}

func (h CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCount"
	log := slog.With("op", op)

	v := BadgeCount{Count: h.counter.Count(), Visible: h.counter.Visible()}
	writeJSON(w, v, log)
}

func (h CartHandler) lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

// A stale index means the caller mutated against cart state that has
// moved on: conflict, not server failure.
func (h CartHandler) writeMutationError(
	w http.ResponseWriter, log *slog.Logger, err error, msg string,
) {
	if errors.Is(err, domain.ErrNoSuchLine) {
		http.Error(w, "stale cart index", http.StatusConflict)
		log.Warn("stale cart index", "err", err)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
	log.Error(msg, "err", err)
}

func toCartView(v domain.CartView) CartView {
	view := CartView{Items: make([]CartLine, len(v.Lines))}
	for i, l := range v.Lines {
		view.Items[i] = CartLine{
			ID:       l.ProductID,
			Name:     l.Name,
			Price:    l.Price,
			ImageURL: l.ImageURL,
			Size:     l.Size,
			Color:    l.Color,
			Quantity: l.Quantity,
			Total:    l.Price * float64(l.Quantity),
		}
	}
	if v.HasSummary {
		view.Summary = &CartSummary{
			Subtotal: v.Summary.Subtotal,
			Shipping: v.Summary.Shipping,
			Discount: int(math.Round(v.Summary.Discount)),
			Total:    int(math.Round(v.Summary.Total)),
		}
	}
	return view
}
