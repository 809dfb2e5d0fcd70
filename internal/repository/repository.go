package repository

import (
	"context"

	"wacdo/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines data access for staff accounts.
type UserRepository interface {
	// Create inserts a user and fills in the assigned id.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by id. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// Update persists the given user's mutable fields.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user. Returns false when absent.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves the products for the given ids, preserving the
	// order of ids.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	List(ctx context.Context) ([]model.Product, error)
	ListAvailable(ctx context.Context) ([]model.Product, error)
	ListByType(ctx context.Context, t model.ProductType) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) (bool, error)

	// ToggleAvailability flips the availability flag in one statement and
	// returns the updated product, or nil when absent.
	ToggleAvailability(ctx context.Context, id int64) (*model.Product, error)

	// MissingIDs returns the subset of ids with no matching product row.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// MenuRepository defines data access for menus and their default
// composition.
type MenuRepository interface {
	// Create inserts a menu and links its composition atomically.
	Create(ctx context.Context, menu *model.Menu, productIDs []int64) error

	// GetByID retrieves a menu with its default composition. Returns nil
	// when absent.
	GetByID(ctx context.Context, id int64) (*model.Menu, error)

	List(ctx context.Context) ([]model.Menu, error)
	ListAvailable(ctx context.Context) ([]model.Menu, error)
	ListByType(ctx context.Context, t model.MenuType) ([]model.Menu, error)

	// Update persists menu fields; a non-nil productIDs replaces the
	// composition in the same transaction.
	Update(ctx context.Context, menu *model.Menu, productIDs []int64) error

	Delete(ctx context.Context, id int64) (bool, error)
	ToggleAvailability(ctx context.Context, id int64) (*model.Menu, error)

	// AddProducts and RemoveProducts adjust the default composition.
	AddProducts(ctx context.Context, menuID int64, productIDs []int64) error
	RemoveProducts(ctx context.Context, menuID int64, productIDs []int64) error

	// ProductsForMenus loads default compositions keyed by menu id.
	ProductsForMenus(ctx context.Context, menuIDs []int64) (map[int64][]model.Product, error)

	// MissingIDs returns the subset of ids with no matching menu row.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// OrderRepository defines data access for orders, their line items and
// option selections. Mutations that span tables run inside a caller-provided
// transaction so a compose either fully commits or leaves nothing behind.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts the order row within the transaction and fills in the
	// assigned id and creation date.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// LinkProducts and LinkMenus attach line items within the transaction.
	LinkProducts(ctx context.Context, tx pgx.Tx, orderID int64, productIDs []int64) error
	LinkMenus(ctx context.Context, tx pgx.Tx, orderID int64, menuIDs []int64) error

	// AddMenuOptions records the option products selected for one menu of
	// the order, within the transaction.
	AddMenuOptions(ctx context.Context, tx pgx.Tx, orderID, menuID int64, optionProductIDs []int64) error

	// ClearLineItems removes all product/menu links and option rows for the
	// order, within the transaction. Used by full updates.
	ClearLineItems(ctx context.Context, tx pgx.Tx, orderID int64) error

	// GetByID retrieves the order row. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	List(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ListByPreparer(ctx context.Context, preparerID int64) ([]model.Order, error)
	ListByDineIn(ctx context.Context, dineIn bool) ([]model.Order, error)

	// Update persists the order row fields within the transaction.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateStatus sets the status. Returns false when the order is absent.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error)

	// AssignPreparer sets the assigned preparer. Returns false when the
	// order is absent.
	AssignPreparer(ctx context.Context, id, preparerID int64) (bool, error)

	// Delete removes the order and, by cascade, its line items and options.
	Delete(ctx context.Context, id int64) (bool, error)

	// Products returns the simple product line items of the order.
	Products(ctx context.Context, orderID int64) ([]model.Product, error)

	// Menus returns the menu line items of the order, composition not
	// loaded.
	Menus(ctx context.Context, orderID int64) ([]model.Menu, error)

	// MenuOptions returns the selected option products keyed by menu id.
	MenuOptions(ctx context.Context, orderID int64) (map[int64][]model.Product, error)
}
