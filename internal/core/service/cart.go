package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/port"
)

var _ port.CartKeeper = (*CartService)(nil)

const addedNotification = "Product added to cart!"

// cartLine is the persisted blob shape, kept compatible with the
// original storefront cart payload.
type cartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

// A CartService owns the canonical cart state on top of the blob
// storage. Indexed mutations re-read the stored lines first, so a line
// index is only valid against the state read in the same operation.
// The mutex serializes writers, last write wins.
type CartService struct {
	mu       sync.Mutex
	storage  port.CartStorage
	notifier port.Notifier
	badge    port.BadgePublisher
	pricing  domain.Pricing
}

// NewCartService publishes the badge count of the stored cart right
// away: the count is derived from persisted state, not from the
// mutations of the current process.
func NewCartService(
	ctx context.Context,
	storage port.CartStorage,
	notifier port.Notifier,
	badge port.BadgePublisher,
	pricing domain.Pricing,
) *CartService {
	s := &CartService{
		storage:  storage,
		notifier: notifier,
		badge:    badge,
		pricing:  pricing,
	}
	s.badge.PublishCartCount(domain.TotalQuantity(s.readLines(ctx)))
	return s
}

// Cart returns the stored lines with computed totals. An empty cart
// reports HasSummary=false: the summary is suppressed, not zeroed.
func (s *CartService) Cart(ctx context.Context) (domain.CartView, error) {
	const op = "CartService.Cart"

	if err := ctx.Err(); err != nil {
		return domain.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.readLines(ctx)
	return domain.CartView{
		Lines:      lines,
		Summary:    domain.Summarize(lines, s.pricing),
		HasSummary: len(lines) > 0,
	}, nil
}

// AddToCart merges by variant tuple: an existing (id, size, color)
// line grows by qty, otherwise a new line snapshots the product's
// name, price and image at this instant. qty below 1 means 1.
func (s *CartService) AddToCart(
	ctx context.Context, p domain.Product, size, color string, qty int,
) error {
	const op = "CartService.AddToCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.readLines(ctx)

	merged := false
	for i := range lines {
		if lines[i].Matches(p.ProductID, size, color) {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Size:      size,
			Color:     color,
			Quantity:  qty,
		})
	}

	if err := s.saveLines(ctx, lines); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(ctx, addedNotification)
	return nil
}

// UpdateQuantity mutates the line at index. Increase is unconditional,
// decrease floors at quantity 1: removal goes through RemoveItem only.
func (s *CartService) UpdateQuantity(
	ctx context.Context, index int, action domain.QuantityAction,
) error {
	const op = "CartService.UpdateQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.readLines(ctx)
	if index < 0 || index >= len(lines) {
		return fmt.Errorf("%s: index %d: %w", op, index, domain.ErrNoSuchLine)
	}

	switch action {
	case domain.QuantityIncrease:
		lines[index].Quantity++
	case domain.QuantityDecrease:
		if lines[index].Quantity > 1 {
			lines[index].Quantity--
		}
	default:
		return fmt.Errorf("%s: unknown action %q", op, action)
	}

	if err := s.saveLines(ctx, lines); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, index int) error {
	const op = "CartService.RemoveItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.readLines(ctx)
	if index < 0 || index >= len(lines) {
		return fmt.Errorf("%s: index %d: %w", op, index, domain.ErrNoSuchLine)
	}

	lines = append(lines[:index], lines[index+1:]...)
	if err := s.saveLines(ctx, lines); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context) error {
	const op = "CartService.ClearCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLines(ctx, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Checkout is a simulated flow: the cart is emptied and a generated
// order reference comes back for the thank-you screen. No payment.
func (s *CartService) Checkout(ctx context.Context) (domain.Order, error) {
	const op = "CartService.Checkout"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLines(ctx, nil); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := domain.Order{Ref: uuid.NewString()}
	s.notifier.Notify(ctx, domain.CheckoutMessage)
	return order, nil
}

// readLines degrades to an empty cart on any storage or decode
// failure: a missing or corrupt blob never surfaces to the caller.
func (s *CartService) readLines(ctx context.Context) []domain.CartLine {
	const op = "CartService.readLines"
	log := slog.With("op", op)

	blob, ok, err := s.storage.Get(ctx)
	if err != nil {
		log.Warn("failed to read cart blob, using empty cart", "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	var stored []cartLine
	if err := json.Unmarshal(blob, &stored); err != nil {
		log.Warn("corrupt cart blob, using empty cart", "err", err)
		return nil
	}

	lines := make([]domain.CartLine, len(stored))
	for i, l := range stored {
		lines[i] = domain.CartLine(l)
	}
	return lines
}

// saveLines persists the full sequence and publishes the fresh badge
// count: every save implies a badge update.
func (s *CartService) saveLines(ctx context.Context, lines []domain.CartLine) error {
	stored := make([]cartLine, len(lines))
	for i, l := range lines {
		stored[i] = cartLine(l)
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, blob); err != nil {
		return err
	}

	s.badge.PublishCartCount(domain.TotalQuantity(lines))
	return nil
}
