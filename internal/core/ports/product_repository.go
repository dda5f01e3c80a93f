package ports

import (
	"context"

	"github.com/storekit/catalog-api/internal/core/domain"
)

// UIPageSize is the fixed page length of the paginated web listing.
const UIPageSize = 5

// ProductRepository defines persistence for catalog entries.
//
// The two listing methods are distinct contracts: List serves the API and
// orders by name ascending when no search term is given; Page serves the web
// UI and always orders by creation time descending.
type ProductRepository interface {
	// List returns every product. With a non-empty search term the result is
	// restricted to products whose name, description, or price rendered as
	// text contains the term (case-insensitive) and ordered by creation time
	// descending; otherwise all products are returned ordered by name.
	List(ctx context.Context, search string) ([]*domain.Product, error)
	// Page returns one page (UIPageSize rows) plus the total match count.
	// page is 1-based.
	Page(ctx context.Context, search string, page int) ([]*domain.Product, int64, error)
	// FindByID returns domain.ErrProductNotFound when the id is absent or malformed.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
