package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/ports"
)

// ProductService orchestrates the product repository and the asset store so
// that no completed operation leaves a product row pointing at a missing image.
type ProductService struct {
	repo   ports.ProductRepository
	assets ports.AssetStore
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, assets ports.AssetStore, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, assets: assets, logger: logger}
}

func (s *ProductService) List(ctx context.Context, search string) ([]*domain.Product, error) {
	return s.repo.List(ctx, search)
}

func (s *ProductService) Page(ctx context.Context, search string, page int) ([]*domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.Page(ctx, search, page)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if err := validateFields(in.Name, in.Price); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}

	if in.Image != nil {
		handle, err := s.assets.Store(ctx, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, err
		}
		product.Image = handle
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Update overwrites name, description, and price with the request values even
// when the client omitted them, matching the system this replaces. A new image
// is stored before the previous asset is deleted, and the row is persisted
// last, so the record never references a removed file.
func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateFields(in.Name, in.Price); err != nil {
		return nil, err
	}

	if in.Image != nil {
		handle, err := s.assets.Store(ctx, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, err
		}
		if product.Image != "" {
			if err := s.assets.Delete(ctx, product.Image); err != nil {
				s.logger.Warn().Err(err).Str("handle", product.Image).Msg("failed to delete replaced asset")
			}
		}
		product.Image = handle
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("product updated")
	return product, nil
}

// Delete removes the stored asset before the row: an interruption in between
// leaves an orphaned file, never a product pointing at a missing image.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" {
		if err := s.assets.Delete(ctx, product.Image); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("id", id).Msg("product deleted")
	return nil
}

func validateFields(name string, price float64) error {
	if utf8.RuneCountInString(name) > 255 {
		return fmt.Errorf("%w: name must not exceed 255 characters", domain.ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}
