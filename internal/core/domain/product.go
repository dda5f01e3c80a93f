package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidAsset = errors.New("uploaded file is not a valid image")

// Product is a catalog entry. Image holds the asset handle of the uploaded
// picture, or "" when no image is attached. The service layer guarantees the
// handle always points at a currently stored asset.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
