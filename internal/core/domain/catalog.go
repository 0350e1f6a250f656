package domain

type (
	// A CatalogQuery is the page-scoped catalog state: active filters,
	// sort key and the 1-indexed requested page.
	CatalogQuery struct {
		Filters Filters
		Sort    SortKey
		Page    int
	}

	// A CatalogPage is the visible page window plus the post-filter
	// total used for the results range and page count.
	CatalogPage struct {
		Items      []Product
		TotalCount int
		Page       int
		PageSize   int
	}

	// A HomeView holds the product selections of the home page sections.
	HomeView struct {
		SelectedProducts []Product
		NewArrivals      []Product
		BestSets         []Product
	}

	// A CartView is the cart page state. HasSummary is false for an
	// empty cart: the summary block is suppressed, not rendered as zero.
	CartView struct {
		Lines      []CartLine
		Summary    CartSummary
		HasSummary bool
	}

	// An Order is the simulated checkout confirmation.
	Order struct {
		Ref string
	}
)
