package service

import (
	"context"
	"fmt"

	"wacdo/internal/model"
	"wacdo/internal/policy"
	"wacdo/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. Composition writes span several
// tables and run in a single transaction.
type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	menus    repository.MenuRepository
	users    repository.UserRepository
	logger   zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	menus repository.MenuRepository,
	users repository.UserRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		menus:    menus,
		users:    users,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) Create(ctx context.Context, caller policy.Identity, req *model.OrderCreateRequest) (*model.OrderResponse, error) {
	if err := policy.CanCreateOrder(caller); err != nil {
		return nil, err
	}

	menuIDs, err := s.validateLineItems(ctx, req.ProductIDs, req.MenuIDs, req.MenuSelections)
	if err != nil {
		return nil, err
	}
	if req.PreparerID != nil {
		if err := s.requirePreparer(ctx, *req.PreparerID); err != nil {
			return nil, err
		}
	}

	dineIn := true
	if req.DineIn != nil {
		dineIn = *req.DineIn
	}

	order := &model.Order{
		TableNumber: req.TableNumber,
		DineIn:      dineIn,
		Status:      model.StatusAwaitingPrep,
		PreparerID:  req.PreparerID,
	}

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orders.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := s.linkItems(ctx, tx, order.ID, req.ProductIDs, menuIDs, req.MenuSelections); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Bool("sur_place", order.DineIn).
		Int("products", len(req.ProductIDs)).
		Int("menus", len(menuIDs)).
		Msg("order created")

	return s.buildResponse(ctx, order)
}

func (s *orderService) List(ctx context.Context, caller policy.Identity) ([]model.OrderResponse, error) {
	if err := policy.CanListAllOrders(caller); err != nil {
		return nil, err
	}
	return s.collect(ctx, nil)(s.orders.List(ctx))
}

func (s *orderService) ListByStatus(ctx context.Context, caller policy.Identity, status model.OrderStatus) ([]model.OrderResponse, error) {
	if !status.Valid() {
		return nil, model.ValidationError(fmt.Sprintf("unknown order status %q", status))
	}
	return s.collect(ctx, policy.OrderScope(caller))(s.orders.ListByStatus(ctx, status))
}

func (s *orderService) ListByPreparer(ctx context.Context, caller policy.Identity, preparerID int64) ([]model.OrderResponse, error) {
	if err := policy.CanListOrdersByPreparer(caller, preparerID); err != nil {
		return nil, err
	}
	return s.collect(ctx, nil)(s.orders.ListByPreparer(ctx, preparerID))
}

func (s *orderService) ListByDineIn(ctx context.Context, caller policy.Identity, dineIn bool) ([]model.OrderResponse, error) {
	return s.collect(ctx, policy.OrderScope(caller))(s.orders.ListByDineIn(ctx, dineIn))
}

func (s *orderService) GetByID(ctx context.Context, caller policy.Identity, id int64) (*model.OrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadOrder(caller, order); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, order)
}

func (s *orderService) Total(ctx context.Context, caller policy.Identity, id int64) (*model.OrderTotalResponse, error) {
	resp, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return &model.OrderTotalResponse{OrderID: resp.ID, TotalTTC: resp.TotalTTC}, nil
}

func (s *orderService) Update(ctx context.Context, caller policy.Identity, id int64, req *model.OrderUpdateRequest) (*model.OrderResponse, error) {
	if err := policy.CanUpdateOrder(caller); err != nil {
		return nil, err
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TableNumber != nil {
		order.TableNumber = req.TableNumber
	}
	if req.DineIn != nil {
		order.DineIn = *req.DineIn
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, model.ValidationError(fmt.Sprintf("unknown order status %q", *req.Status))
		}
		order.Status = *req.Status
	}
	if req.PreparerID != nil {
		if err := s.requirePreparer(ctx, *req.PreparerID); err != nil {
			return nil, err
		}
		order.PreparerID = req.PreparerID
	}

	relink := req.ProductIDs != nil || req.MenuIDs != nil || req.MenuSelections != nil

	var menuIDs []int64
	if relink {
		menuIDs, err = s.validateLineItems(ctx, req.ProductIDs, req.MenuIDs, req.MenuSelections)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orders.Update(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if relink {
		if err := s.orders.ClearLineItems(ctx, tx, order.ID); err != nil {
			return nil, fmt.Errorf("failed to clear order line items: %w", err)
		}
		if err := s.linkItems(ctx, tx, order.ID, req.ProductIDs, menuIDs, req.MenuSelections); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	s.logger.Info().Int64("order_id", id).Msg("order updated")
	return s.buildResponse(ctx, order)
}

func (s *orderService) SetStatus(ctx context.Context, caller policy.Identity, id int64, status model.OrderStatus) (*model.OrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanSetStatus(caller, order, status); err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !updated {
		return nil, model.NotFoundError("order", id)
	}

	s.logger.Info().
		Int64("order_id", id).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Int64("user_id", caller.UserID).
		Msg("order status changed")

	order.Status = status
	return s.buildResponse(ctx, order)
}

func (s *orderService) AssignPreparer(ctx context.Context, caller policy.Identity, orderID, preparerID int64) (*model.OrderResponse, error) {
	if err := policy.CanAssignPreparer(caller); err != nil {
		return nil, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.requirePreparer(ctx, preparerID); err != nil {
		return nil, err
	}

	assigned, err := s.orders.AssignPreparer(ctx, orderID, preparerID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign preparer: %w", err)
	}
	if !assigned {
		return nil, model.NotFoundError("order", orderID)
	}

	s.logger.Info().Int64("order_id", orderID).Int64("preparateur_id", preparerID).Msg("preparer assigned")

	order.PreparerID = &preparerID
	return s.buildResponse(ctx, order)
}

func (s *orderService) Delete(ctx context.Context, caller policy.Identity, id int64) error {
	if err := policy.CanDeleteOrder(caller); err != nil {
		return err
	}

	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.NotFoundError("order", id)
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}

func (s *orderService) getOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.NotFoundError("order", id)
	}
	return order, nil
}

// validateLineItems checks every referenced product, menu and option against
// the catalog and returns the full list of menu ids (plain plus selections).
func (s *orderService) validateLineItems(ctx context.Context, productIDs, menuIDs []int64, selections []model.MenuSelection) ([]int64, error) {
	if missing, err := s.products.MissingIDs(ctx, productIDs); err != nil {
		return nil, fmt.Errorf("failed to validate order products: %w", err)
	} else if len(missing) > 0 {
		return nil, model.UnknownProductError(missing[0])
	}

	allMenuIDs := make([]int64, 0, len(menuIDs)+len(selections))
	allMenuIDs = append(allMenuIDs, menuIDs...)
	for _, sel := range selections {
		allMenuIDs = append(allMenuIDs, sel.MenuID)
	}

	if missing, err := s.menus.MissingIDs(ctx, allMenuIDs); err != nil {
		return nil, fmt.Errorf("failed to validate order menus: %w", err)
	} else if len(missing) > 0 {
		return nil, model.UnknownMenuError(missing[0])
	}

	for _, sel := range selections {
		missing, err := s.products.MissingIDs(ctx, sel.OptionProductIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to validate menu options: %w", err)
		}
		if len(missing) > 0 {
			return nil, model.UnknownOptionError(sel.MenuID, missing[0])
		}
	}

	return allMenuIDs, nil
}

// linkItems attaches the validated line items and option selections within
// the transaction.
func (s *orderService) linkItems(ctx context.Context, tx pgx.Tx, orderID int64, productIDs, menuIDs []int64, selections []model.MenuSelection) error {
	if err := s.orders.LinkProducts(ctx, tx, orderID, productIDs); err != nil {
		return fmt.Errorf("failed to link order products: %w", err)
	}
	if err := s.orders.LinkMenus(ctx, tx, orderID, menuIDs); err != nil {
		return fmt.Errorf("failed to link order menus: %w", err)
	}
	for _, sel := range selections {
		if err := s.orders.AddMenuOptions(ctx, tx, orderID, sel.MenuID, sel.OptionProductIDs); err != nil {
			return fmt.Errorf("failed to record menu options: %w", err)
		}
	}
	return nil
}

// requirePreparer checks that the referenced user exists and holds the
// preparation agent role.
func (s *orderService) requirePreparer(ctx context.Context, preparerID int64) error {
	user, err := s.users.GetByID(ctx, preparerID)
	if err != nil {
		return fmt.Errorf("failed to get preparer: %w", err)
	}
	if user == nil {
		return model.NotFoundError("user", preparerID)
	}
	if user.Role != model.RolePreparateur {
		return model.ValidationError(fmt.Sprintf("user %d is not a preparation agent", preparerID))
	}
	return nil
}

// collect turns order rows into enriched responses, optionally narrowing
// them to the given preparer id.
func (s *orderService) collect(ctx context.Context, scope *int64) func([]model.Order, error) ([]model.OrderResponse, error) {
	return func(orders []model.Order, err error) ([]model.OrderResponse, error) {
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		responses := make([]model.OrderResponse, 0, len(orders))
		for i := range orders {
			if scope != nil && (orders[i].PreparerID == nil || *orders[i].PreparerID != *scope) {
				continue
			}
			resp, err := s.buildResponse(ctx, &orders[i])
			if err != nil {
				return nil, err
			}
			responses = append(responses, *resp)
		}
		return responses, nil
	}
}

// buildResponse loads the order's line items and option selections and
// computes the tax-inclusive total. A menu with option rows in this order is
// rendered with exactly those products; otherwise it carries its default
// composition.
func (s *orderService) buildResponse(ctx context.Context, order *model.Order) (*model.OrderResponse, error) {
	products, err := s.orders.Products(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	menus, err := s.orders.Menus(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order menus: %w", err)
	}

	options, err := s.orders.MenuOptions(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu options: %w", err)
	}

	menuIDs := make([]int64, 0, len(menus))
	for i := range menus {
		if _, ok := options[menus[i].ID]; !ok {
			menuIDs = append(menuIDs, menus[i].ID)
		}
	}
	defaults, err := s.menus.ProductsForMenus(ctx, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu compositions: %w", err)
	}

	total := 0.0
	for i := range products {
		total += products[i].PriceHT
	}
	for i := range menus {
		total += menus[i].PriceHT
		if selected, ok := options[menus[i].ID]; ok {
			menus[i].Products = selected
		} else if composition, ok := defaults[menus[i].ID]; ok {
			menus[i].Products = composition
		} else {
			menus[i].Products = []model.Product{}
		}
	}
	if menus == nil {
		menus = []model.Menu{}
	}

	return &model.OrderResponse{
		ID:          order.ID,
		Date:        order.Date,
		TableNumber: order.TableNumber,
		DineIn:      order.DineIn,
		Status:      order.Status,
		PreparerID:  order.PreparerID,
		Products:    products,
		Menus:       menus,
		TotalTTC:    total * (1 + model.VATRate),
	}, nil
}
