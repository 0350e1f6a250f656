package domain

import "errors"

var (
	ErrNotFound   = errors.New("product not found")
	ErrNoSuchLine = errors.New("no cart line at index")
)

type (
	// A CartLine is a persisted cart entry. Name, Price and ImageURL
	// are snapshots taken when the product was first added, not live
	// references into the catalog.
	CartLine struct {
		ProductID string
		Name      string
		Price     float64
		ImageURL  string
		Size      string
		Color     string
		Quantity  int
	}

	// Pricing holds the configured cart totals constants.
	Pricing struct {
		ShippingCost      float64
		DiscountThreshold float64
		DiscountRate      float64
	}

	CartSummary struct {
		Subtotal float64
		Shipping float64
		Discount float64
		Total    float64
	}
)

// Matches reports whether the line belongs to the same variant tuple.
// Two lines with equal product id but different size or color are
// distinct cart entries.
func (l CartLine) Matches(productID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// CheckoutMessage is the thank-you text shown after the simulated
// checkout, in the toast and in the confirmation payload alike.
const CheckoutMessage = "Thank you for your purchase!"

type QuantityAction string

const (
	QuantityIncrease QuantityAction = "increase"
	QuantityDecrease QuantityAction = "decrease"
)

// TotalQuantity is the badge count: the sum of line quantities.
func TotalQuantity(lines []CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Summarize computes cart totals. The discount applies only when the
// subtotal exceeds the configured threshold; shipping applies to any
// non-empty cart. Presentation of an empty cart suppresses the summary
// entirely, callers must not render the zero value.
func Summarize(lines []CartLine, p Pricing) CartSummary {
	if len(lines) == 0 {
		return CartSummary{}
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.Price * float64(l.Quantity)
	}

	var discount float64
	if subtotal > p.DiscountThreshold {
		discount = subtotal * p.DiscountRate
	}

	return CartSummary{
		Subtotal: subtotal,
		Shipping: p.ShippingCost,
		Discount: discount,
		Total:    subtotal + p.ShippingCost - discount,
	}
}
