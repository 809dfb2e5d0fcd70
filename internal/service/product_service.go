package service

import (
	"context"
	"fmt"

	"wacdo/internal/model"
	"wacdo/internal/policy"
	"wacdo/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		products: products,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, caller policy.Identity, req *model.ProductCreateRequest) (*model.Product, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, model.ValidationError("nom is required")
	}
	if !req.Type.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown product type %q", req.Type))
	}
	if req.PriceHT < 0 {
		return nil, model.ValidationError("prixHT cannot be negative")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	options := req.Options
	if options == nil {
		options = []string{}
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceHT:     req.PriceHT,
		Image:       req.Image,
		Options:     options,
		Available:   available,
		Type:        req.Type,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("type", string(product.Type)).Msg("product created")
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.collect(s.products.List(ctx))
}

func (s *productService) ListAvailable(ctx context.Context) ([]model.Product, error) {
	return s.collect(s.products.ListAvailable(ctx))
}

func (s *productService) ListByType(ctx context.Context, t model.ProductType) ([]model.Product, error) {
	if !t.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown product type %q", t))
	}
	return s.collect(s.products.ListByType(ctx, t))
}

func (s *productService) collect(products []model.Product, err error) ([]model.Product, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.NotFoundError("product", id)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, caller policy.Identity, id int64, req *model.ProductUpdateRequest) (*model.Product, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, model.ValidationError("nom cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PriceHT != nil {
		if *req.PriceHT < 0 {
			return nil, model.ValidationError("prixHT cannot be negative")
		}
		product.PriceHT = *req.PriceHT
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Options != nil {
		product.Options = req.Options
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, model.ValidationError(fmt.Sprintf("unknown product type %q", *req.Type))
		}
		product.Type = *req.Type
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, caller policy.Identity, id int64) error {
	if err := policy.CanManageCatalog(caller); err != nil {
		return err
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.NotFoundError("product", id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *productService) ToggleAvailability(ctx context.Context, caller policy.Identity, id int64) (*model.Product, error) {
	if err := policy.CanToggleAvailability(caller); err != nil {
		return nil, err
	}

	product, err := s.products.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle product availability: %w", err)
	}
	if product == nil {
		return nil, model.NotFoundError("product", id)
	}

	s.logger.Info().Int64("product_id", id).Bool("disponibilite", product.Available).Msg("product availability toggled")
	return product, nil
}
