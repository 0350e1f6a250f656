package httphandler

type (
	// Product mirrors the catalog document shape, so the card grid can
	// consume API payloads and the static dataset interchangeably.
	Product struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		Rating      float64  `json:"rating"`
		Popularity  float64  `json:"popularity"`
		Size        string   `json:"size"`
		Color       string   `json:"color"`
		Category    string   `json:"category"`
		SalesStatus bool     `json:"salesStatus"`
		Blocks      []string `json:"blocks,omitempty"`
		ImageURL    string   `json:"imageUrl"`
	}

	CatalogPage struct {
		Items        []Product `json:"items"`
		TotalCount   int       `json:"total_count"`
		Page         int       `json:"page"`
		PageSize     int       `json:"page_size"`
		TotalPages   int       `json:"total_pages"`
		ResultsStart int       `json:"results_start"`
		ResultsEnd   int       `json:"results_end"`
	}

	ProductDetail struct {
		Product
		SizeOptions  []string  `json:"size_options"`
		ColorOptions []string  `json:"color_options"`
		Related      []Product `json:"related"`
	}

	HomeView struct {
		SelectedProducts []Product `json:"selected_products"`
		NewArrivals      []Product `json:"new_arrivals"`
		BestSets         []Product `json:"best_sets"`
	}
)

type (
	CartLine struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		ImageURL string  `json:"imageUrl"`
		Size     string  `json:"size"`
		Color    string  `json:"color"`
		Quantity int     `json:"quantity"`
		Total    float64 `json:"total"`
	}

	// CartSummary carries display values: subtotal and shipping
	// un-rounded, discount and total rounded to the nearest integer.
	CartSummary struct {
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
		Discount int     `json:"discount"`
		Total    int     `json:"total"`
	}

	// CartView omits the summary entirely for an empty cart.
	CartView struct {
		Items   []CartLine   `json:"items"`
		Summary *CartSummary `json:"summary,omitempty"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}

	UpdateItemRequest struct {
		Action string `json:"action"`
	}

	CheckoutResponse struct {
		OrderRef string `json:"order_ref"`
		Message  string `json:"message"`
	}

	BadgeCount struct {
		Count   int  `json:"count"`
		Visible bool `json:"visible"`
	}
)

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	ContactRequest struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Topic   string `json:"topic"`
		Message string `json:"message"`
	}

	ReviewRequest struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	FormResponse struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors,omitempty"`
	}
)
