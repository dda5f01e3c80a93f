package ports

import "context"

// AssetStore persists uploaded product images under content-derived handles.
type AssetStore interface {
	// Store sniffs the payload, rejects anything that is not an image with
	// domain.ErrInvalidAsset, and persists it under a handle derived from the
	// content hash plus the original file extension.
	Store(ctx context.Context, filename string, data []byte) (string, error)
	// Delete is idempotent; removing a handle that does not exist is not an error.
	Delete(ctx context.Context, handle string) error
	// URLFor returns the public path a browser can fetch the asset from.
	URLFor(handle string) string
}
