package port

import (
	"context"

	"github.com/voyago/storefront/internal/core/domain"
)

// Outbound ports.
type (
	// A ProductsProvider fetches the full product document once
	// at application start.
	ProductsProvider interface {
		FetchProducts(context.Context) ([]domain.Product, error)
	}

	// A CartStorage is the opaque blob store under the cart.
	// Get reports ok=false when nothing is stored yet.
	CartStorage interface {
		Get(context.Context) (blob []byte, ok bool, err error)
		Set(context.Context, []byte) error
	}

	// A Notifier shows a user-visible toast message.
	Notifier interface {
		Notify(ctx context.Context, message string)
	}

	// A BadgePublisher receives the cart total-quantity count
	// after every cart save.
	BadgePublisher interface {
		PublishCartCount(n int)
	}
)

// Inbound ports.
type (
	CatalogViewer interface {
		ViewCatalog(context.Context, domain.CatalogQuery) (domain.CatalogPage, error)
	}

	ProductFinder interface {
		FindProduct(ctx context.Context, productID string) (domain.Product, error)
		RelatedProducts(ctx context.Context, productID string, n int) ([]domain.Product, error)
	}

	ProductSearcher interface {
		SearchProduct(ctx context.Context, query string) (domain.Product, error)
	}

	HomeViewer interface {
		ViewHome(context.Context) (domain.HomeView, error)
	}

	CartKeeper interface {
		Cart(context.Context) (domain.CartView, error)
		AddToCart(ctx context.Context, p domain.Product, size, color string, qty int) error
		UpdateQuantity(ctx context.Context, index int, action domain.QuantityAction) error
		RemoveItem(ctx context.Context, index int) error
		ClearCart(context.Context) error
		Checkout(context.Context) (domain.Order, error)
	}
)
