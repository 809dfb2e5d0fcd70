package service

import (
	"context"
	"fmt"

	"wacdo/internal/model"
	"wacdo/internal/policy"
	"wacdo/internal/repository"

	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menus    repository.MenuRepository
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menus repository.MenuRepository, products repository.ProductRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menus:    menus,
		products: products,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

func (s *menuService) Create(ctx context.Context, caller policy.Identity, req *model.MenuCreateRequest) (*model.Menu, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, model.ValidationError("nom is required")
	}
	if !req.Type.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown menu type %q", req.Type))
	}
	if req.PriceHT < 0 {
		return nil, model.ValidationError("prixHT cannot be negative")
	}

	if err := s.requireProducts(ctx, req.ProductIDs); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	menu := &model.Menu{
		Name:        req.Name,
		Description: req.Description,
		PriceHT:     req.PriceHT,
		Image:       req.Image,
		Available:   available,
		Type:        req.Type,
	}

	if err := s.menus.Create(ctx, menu, req.ProductIDs); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	s.logger.Info().Int64("menu_id", menu.ID).Str("menu_type", string(menu.Type)).Msg("menu created")
	return s.GetByID(ctx, menu.ID)
}

func (s *menuService) List(ctx context.Context) ([]model.Menu, error) {
	return s.collect(s.menus.List(ctx))
}

func (s *menuService) ListAvailable(ctx context.Context) ([]model.Menu, error) {
	return s.collect(s.menus.ListAvailable(ctx))
}

func (s *menuService) ListByType(ctx context.Context, t model.MenuType) ([]model.Menu, error) {
	if !t.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown menu type %q", t))
	}
	return s.collect(s.menus.ListByType(ctx, t))
}

func (s *menuService) collect(menus []model.Menu, err error) ([]model.Menu, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	if menus == nil {
		menus = []model.Menu{}
	}
	return menus, nil
}

func (s *menuService) GetByID(ctx context.Context, id int64) (*model.Menu, error) {
	menu, err := s.menus.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	if menu == nil {
		return nil, model.NotFoundError("menu", id)
	}
	return menu, nil
}

func (s *menuService) Update(ctx context.Context, caller policy.Identity, id int64, req *model.MenuUpdateRequest) (*model.Menu, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}

	menu, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, model.ValidationError("nom cannot be empty")
		}
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.PriceHT != nil {
		if *req.PriceHT < 0 {
			return nil, model.ValidationError("prixHT cannot be negative")
		}
		menu.PriceHT = *req.PriceHT
	}
	if req.Image != nil {
		menu.Image = *req.Image
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, model.ValidationError(fmt.Sprintf("unknown menu type %q", *req.Type))
		}
		menu.Type = *req.Type
	}

	if req.ProductIDs != nil {
		if err := s.requireProducts(ctx, req.ProductIDs); err != nil {
			return nil, err
		}
	}

	if err := s.menus.Update(ctx, menu, req.ProductIDs); err != nil {
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	s.logger.Info().Int64("menu_id", id).Msg("menu updated")
	return s.GetByID(ctx, id)
}

func (s *menuService) Delete(ctx context.Context, caller policy.Identity, id int64) error {
	if err := policy.CanManageCatalog(caller); err != nil {
		return err
	}

	deleted, err := s.menus.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	if !deleted {
		return model.NotFoundError("menu", id)
	}

	s.logger.Info().Int64("menu_id", id).Msg("menu deleted")
	return nil
}

func (s *menuService) ToggleAvailability(ctx context.Context, caller policy.Identity, id int64) (*model.Menu, error) {
	if err := policy.CanToggleAvailability(caller); err != nil {
		return nil, err
	}

	menu, err := s.menus.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle menu availability: %w", err)
	}
	if menu == nil {
		return nil, model.NotFoundError("menu", id)
	}

	s.logger.Info().Int64("menu_id", id).Bool("disponibilite", menu.Available).Msg("menu availability toggled")
	return s.GetByID(ctx, id)
}

func (s *menuService) AddProducts(ctx context.Context, caller policy.Identity, id int64, productIDs []int64) (*model.Menu, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, model.ValidationError("product_ids is required")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.requireProducts(ctx, productIDs); err != nil {
		return nil, err
	}

	if err := s.menus.AddProducts(ctx, id, productIDs); err != nil {
		return nil, fmt.Errorf("failed to add menu products: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *menuService) RemoveProducts(ctx context.Context, caller policy.Identity, id int64, productIDs []int64) (*model.Menu, error) {
	if err := policy.CanManageCatalog(caller); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, model.ValidationError("product_ids is required")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.menus.RemoveProducts(ctx, id, productIDs); err != nil {
		return nil, fmt.Errorf("failed to remove menu products: %w", err)
	}
	return s.GetByID(ctx, id)
}

// requireProducts fails with a validation error naming the first product id
// that does not resolve.
func (s *menuService) requireProducts(ctx context.Context, productIDs []int64) error {
	missing, err := s.products.MissingIDs(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("failed to validate products: %w", err)
	}
	if len(missing) > 0 {
		return model.UnknownProductError(missing[0])
	}
	return nil
}
