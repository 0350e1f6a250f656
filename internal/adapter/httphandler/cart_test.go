package httphandler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyago/storefront/internal/adapter/httphandler"
	"github.com/voyago/storefront/internal/core/domain"
)

type MockCartKeeper struct {
	mock.Mock
}

func (m *MockCartKeeper) Cart(ctx context.Context) (domain.CartView, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CartView), args.Error(1)
}

func (m *MockCartKeeper) AddToCart(
	ctx context.Context, p domain.Product, size, color string, qty int,
) error {
	args := m.Called(ctx, p, size, color, qty)
	return args.Error(0)
}

func (m *MockCartKeeper) UpdateQuantity(
	ctx context.Context, index int, action domain.QuantityAction,
) error {
	args := m.Called(ctx, index, action)
	return args.Error(0)
}

func (m *MockCartKeeper) RemoveItem(ctx context.Context, index int) error {
	args := m.Called(ctx, index)
	return args.Error(0)
}

func (m *MockCartKeeper) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartKeeper) Checkout(ctx context.Context) (domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Order), args.Error(1)
}

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) Count() int {
	return m.Called().Int(0)
}

func (m *MockCounter) Visible() bool {
	return m.Called().Bool(0)
}

func newCartMux(
	cart *MockCartKeeper, catalog *MockCatalog, counter *MockCounter,
) *http.ServeMux {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, cart, catalog, counter)
	return mux
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetCart(t *testing.T) {

	t.Run("WithLines", func(t *testing.T) {
		cart := new(MockCartKeeper)
		cart.On("Cart", mock.Anything).Return(domain.CartView{
			Lines: []domain.CartLine{
				{ProductID: "1", Name: "Blue Suitcase", Price: 1200,
					Size: "M", Color: "Blue", Quantity: 2},
			},
			Summary: domain.CartSummary{
				Subtotal: 2400, Shipping: 30, Discount: 0, Total: 2430,
			},
			HasSummary: true,
		}, nil)

		mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		v := decodeBody[httphandler.CartView](t, rr)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 2400.0, v.Items[0].Total)
		require.NotNil(t, v.Summary)
		assert.Equal(t, 2400.0, v.Summary.Subtotal)
		assert.Equal(t, 2430, v.Summary.Total)
	})

	t.Run("EmptyCartHasNoSummary", func(t *testing.T) {
		cart := new(MockCartKeeper)
		cart.On("Cart", mock.Anything).Return(domain.CartView{}, nil)

		mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "summary")
	})

	t.Run("RoundsDiscountAndTotal", func(t *testing.T) {
		cart := new(MockCartKeeper)
		cart.On("Cart", mock.Anything).Return(domain.CartView{
			Lines: []domain.CartLine{{ProductID: "1", Price: 3205.5, Quantity: 1}},
			Summary: domain.CartSummary{
				Subtotal: 3205.5, Shipping: 30,
				Discount: 320.55, Total: 2914.95,
			},
			HasSummary: true,
		}, nil)

		mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

		v := decodeBody[httphandler.CartView](t, rr)
		require.NotNil(t, v.Summary)
		assert.Equal(t, 321, v.Summary.Discount)
		assert.Equal(t, 2915, v.Summary.Total)
	})
}

func TestPostItem(t *testing.T) {

	t.Run("Created", func(t *testing.T) {
		p := domain.Product{ProductID: "1", Name: "Blue Suitcase", Price: 1200}
		catalog := new(MockCatalog)
		catalog.On("FindProduct", mock.Anything, "1").Return(p, nil)
		cart := new(MockCartKeeper)
		cart.On("AddToCart", mock.Anything, p, "M", "Blue", 2).Return(nil)

		mux := newCartMux(cart, catalog, new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/cart/items",
			`{"product_id":"1","size":"M","color":"Blue","quantity":2}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		cart.AssertExpectations(t)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("FindProduct", mock.Anything, "nope").Return(
			domain.Product{}, domain.ErrNotFound)

		mux := newCartMux(new(MockCartKeeper), catalog, new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/cart/items",
			`{"product_id":"nope"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		mux := newCartMux(new(MockCartKeeper), new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/cart/items", `{"size":"M"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		mux := newCartMux(new(MockCartKeeper), new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/cart/items", `{broken`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPatchItem(t *testing.T) {

	t.Run("Increase", func(t *testing.T) {
		cart := new(MockCartKeeper)
		cart.On("UpdateQuantity", mock.Anything, 0, domain.QuantityIncrease).
			Return(nil)
		cart.On("Cart", mock.Anything).Return(domain.CartView{}, nil)

		mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPatch, "/v1/cart/items/0",
			`{"action":"increase"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		cart.AssertExpectations(t)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		mux := newCartMux(new(MockCartKeeper), new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPatch, "/v1/cart/items/0",
			`{"action":"drop"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("StaleIndexConflicts", func(t *testing.T) {
		cart := new(MockCartKeeper)
		cart.On("UpdateQuantity", mock.Anything, 7, domain.QuantityDecrease).
			Return(domain.ErrNoSuchLine)

		mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPatch, "/v1/cart/items/7",
			`{"action":"decrease"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("InvalidIndex", func(t *testing.T) {
		mux := newCartMux(new(MockCartKeeper), new(MockCatalog), new(MockCounter))
		rr := httptest.NewRecorder()
		req := jsonRequest(http.MethodPatch, "/v1/cart/items/abc",
			`{"action":"increase"}`)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	cart := new(MockCartKeeper)
	cart.On("RemoveItem", mock.Anything, 1).Return(nil)
	cart.On("Cart", mock.Anything).Return(domain.CartView{}, nil)

	mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/cart/items/1", nil)
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	cart.AssertExpectations(t)
}

func TestClearCart(t *testing.T) {
	cart := new(MockCartKeeper)
	cart.On("ClearCart", mock.Anything).Return(nil)
	cart.On("Cart", mock.Anything).Return(domain.CartView{}, nil)

	mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/v1/cart", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	cart.AssertExpectations(t)
}

func TestCheckout(t *testing.T) {
	cart := new(MockCartKeeper)
	cart.On("Checkout", mock.Anything).Return(
		domain.Order{Ref: "test-order-ref"}, nil)

	mux := newCartMux(cart, new(MockCatalog), new(MockCounter))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil)
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[httphandler.CheckoutResponse](t, rr)
	assert.Equal(t, "test-order-ref", resp.OrderRef)
	assert.Equal(t, "Thank you for your purchase!", resp.Message)
}

func TestGetCount(t *testing.T) {
	counter := new(MockCounter)
	counter.On("Count").Return(3)
	counter.On("Visible").Return(true)

	mux := newCartMux(new(MockCartKeeper), new(MockCatalog), counter)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/cart/count", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	v := decodeBody[httphandler.BadgeCount](t, rr)
	assert.Equal(t, 3, v.Count)
	assert.True(t, v.Visible)
}
