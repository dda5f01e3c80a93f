package ports

import (
	"context"

	"github.com/storekit/catalog-api/internal/core/domain"
)

// ImageUpload carries a multipart image payload into the service layer.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       *ImageUpload // optional
}

// UpdateProductInput mirrors the write path of the original system: name,
// description, and price always overwrite the stored values, even when the
// client omitted them from the request. Only the image is genuinely optional.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       *ImageUpload
}

type ProductService interface {
	List(ctx context.Context, search string) ([]*domain.Product, error)
	Page(ctx context.Context, search string, page int) ([]*domain.Product, int64, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	// Create validates before any mutation: a validation failure leaves both
	// the repository and the asset store untouched.
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	// Update replaces the image atomically from the record's point of view:
	// the new asset is stored first and the old one deleted before the row is
	// persisted, so the updated record never references a missing asset.
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	// Delete removes the stored asset first, then the row; a crash in between
	// leaves an orphaned file rather than a dangling reference.
	Delete(ctx context.Context, id string) error
}
