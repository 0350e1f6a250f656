package catalogjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/port"
	"github.com/voyago/storefront/pkg/retry"
)

var _ port.ProductsProvider = Source{}

type (
	productDoc struct {
		Data []product `json:"data"`
	}

	product struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		Rating      float64  `json:"rating"`
		Popularity  float64  `json:"popularity"`
		Size        string   `json:"size"`
		Color       string   `json:"color"`
		Category    string   `json:"category"`
		SalesStatus bool     `json:"salesStatus"`
		Blocks      []string `json:"blocks"`
		ImageURL    string   `json:"imageUrl"`
	}
)

// A Source reads the static product document, a JSON object holding
// the products array under "data". The location is a local file path
// or an http(s) URL, fetched once per application start.
type Source struct {
	location string
	client   *http.Client
}

func NewSource(location string) Source {
	return Source{
		location: location,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s Source) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Source.FetchProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(100 * time.Millisecond),
	}
	raw, err := retry.DoWithResult(ctx, retryCfg, func() ([]byte, error) {
		return s.read(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc productDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: malformed product document: %w", op, err)
	}
	return s.toDomain(doc.Data), nil
}

func (s Source) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") ||
		strings.HasPrefix(s.location, "https://") {
		return s.readHTTP(ctx)
	}
	return os.ReadFile(s.location)
}

func (s Source) readHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.location, nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (s Source) toDomain(ps []product) (domainPs []domain.Product) {
	for _, p := range ps {
		domainPs = append(domainPs, domain.Product{
			ProductID:   p.ID,
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
		})
	}
	return domainPs
}
