package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/storefront/internal/core/domain"
)

var testPricing = domain.Pricing{
	ShippingCost:      30,
	DiscountThreshold: 3000,
	DiscountRate:      0.10,
}

func TestSummarize(t *testing.T) {

	t.Run("EmptyCart", func(t *testing.T) {
		s := domain.Summarize(nil, testPricing)
		assert.Zero(t, s)
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "1", Price: 100, Quantity: 1},
		}
		s := domain.Summarize(lines, testPricing)
		assert.Equal(t, 100.0, s.Subtotal)
		assert.Equal(t, 30.0, s.Shipping)
		assert.Equal(t, 0.0, s.Discount)
		assert.Equal(t, 130.0, s.Total)
	})

	t.Run("AtThreshold", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "1", Price: 1500, Quantity: 2},
		}
		s := domain.Summarize(lines, testPricing)
		assert.Equal(t, 3000.0, s.Subtotal)
		assert.Equal(t, 0.0, s.Discount)
		assert.Equal(t, 3030.0, s.Total)
	})

	t.Run("AboveThreshold", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "1", Price: 1200, Quantity: 1},
			{ProductID: "2", Price: 1000, Quantity: 2},
		}
		s := domain.Summarize(lines, testPricing)
		assert.Equal(t, 3200.0, s.Subtotal)
		assert.Equal(t, 30.0, s.Shipping)
		assert.Equal(t, 320.0, s.Discount)
		assert.Equal(t, 2910.0, s.Total)
	})
}

func TestTotalQuantity(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: "1", Quantity: 2},
		{ProductID: "1", Size: "L", Quantity: 1},
		{ProductID: "2", Quantity: 3},
	}
	assert.Equal(t, 6, domain.TotalQuantity(lines))
	assert.Equal(t, 0, domain.TotalQuantity(nil))
}

func TestCartLineMatches(t *testing.T) {
	l := domain.CartLine{ProductID: "1", Size: "M", Color: "Blue"}

	assert.True(t, l.Matches("1", "M", "Blue"))
	assert.False(t, l.Matches("2", "M", "Blue"))
	assert.False(t, l.Matches("1", "L", "Blue"))
	assert.False(t, l.Matches("1", "M", "Red"))
}

func TestVariantOptions(t *testing.T) {

	t.Run("SingleValue", func(t *testing.T) {
		p := domain.Product{Size: "M", Color: "Blue"}
		assert.Equal(t, []string{"M"}, p.SizeOptions())
		assert.Equal(t, []string{"Blue"}, p.ColorOptions())
	})

	t.Run("CommaSeparated", func(t *testing.T) {
		p := domain.Product{Size: "S, M, L", Color: "Black, Grey"}
		assert.Equal(t, []string{"S", "M", "L"}, p.SizeOptions())
		assert.Equal(t, []string{"Black", "Grey"}, p.ColorOptions())
	})

	t.Run("Empty", func(t *testing.T) {
		p := domain.Product{}
		assert.Nil(t, p.SizeOptions())
		assert.Nil(t, p.ColorOptions())
	})
}

func TestParseSortKey(t *testing.T) {
	require.Equal(t, domain.SortPriceAsc, domain.ParseSortKey("price-asc"))
	require.Equal(t, domain.SortPriceDesc, domain.ParseSortKey("price-desc"))
	require.Equal(t, domain.SortRating, domain.ParseSortKey("rating"))
	require.Equal(t, domain.SortPopularity, domain.ParseSortKey("popularity"))
	require.Equal(t, domain.SortDefault, domain.ParseSortKey("default"))
	require.Equal(t, domain.SortDefault, domain.ParseSortKey(""))
	require.Equal(t, domain.SortDefault, domain.ParseSortKey("bogus"))
}
