package service

import (
	"context"

	"wacdo/internal/model"
	"wacdo/internal/policy"
)

// AuthService authenticates staff and issues access tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed token with the
	// user payload.
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
}

// UserService defines staff account management.
type UserService interface {
	Create(ctx context.Context, caller policy.Identity, req *model.UserCreateRequest) (*model.User, error)
	List(ctx context.Context, caller policy.Identity) ([]model.User, error)
	GetByID(ctx context.Context, caller policy.Identity, id int64) (*model.User, error)
	Update(ctx context.Context, caller policy.Identity, id int64, req *model.UserUpdateRequest) (*model.User, error)
	Delete(ctx context.Context, caller policy.Identity, id int64) error

	// GetProfile and UpdateProfile act on the caller's own account.
	GetProfile(ctx context.Context, caller policy.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, caller policy.Identity, req *model.UserUpdateRequest) (*model.User, error)
}

// ProductService defines catalog operations for products. Reads are public;
// mutations go through the policy.
type ProductService interface {
	Create(ctx context.Context, caller policy.Identity, req *model.ProductCreateRequest) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListAvailable(ctx context.Context) ([]model.Product, error)
	ListByType(ctx context.Context, t model.ProductType) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, caller policy.Identity, id int64, req *model.ProductUpdateRequest) (*model.Product, error)
	Delete(ctx context.Context, caller policy.Identity, id int64) error
	ToggleAvailability(ctx context.Context, caller policy.Identity, id int64) (*model.Product, error)
}

// MenuService defines catalog operations for menus.
type MenuService interface {
	Create(ctx context.Context, caller policy.Identity, req *model.MenuCreateRequest) (*model.Menu, error)
	List(ctx context.Context) ([]model.Menu, error)
	ListAvailable(ctx context.Context) ([]model.Menu, error)
	ListByType(ctx context.Context, t model.MenuType) ([]model.Menu, error)
	GetByID(ctx context.Context, id int64) (*model.Menu, error)
	Update(ctx context.Context, caller policy.Identity, id int64, req *model.MenuUpdateRequest) (*model.Menu, error)
	Delete(ctx context.Context, caller policy.Identity, id int64) error
	ToggleAvailability(ctx context.Context, caller policy.Identity, id int64) (*model.Menu, error)
	AddProducts(ctx context.Context, caller policy.Identity, id int64, productIDs []int64) (*model.Menu, error)
	RemoveProducts(ctx context.Context, caller policy.Identity, id int64, productIDs []int64) (*model.Menu, error)
}

// OrderService defines order composition, reads and the status workflow.
// Every operation checks the authorization policy before touching storage.
type OrderService interface {
	Create(ctx context.Context, caller policy.Identity, req *model.OrderCreateRequest) (*model.OrderResponse, error)
	List(ctx context.Context, caller policy.Identity) ([]model.OrderResponse, error)
	ListByStatus(ctx context.Context, caller policy.Identity, status model.OrderStatus) ([]model.OrderResponse, error)
	ListByPreparer(ctx context.Context, caller policy.Identity, preparerID int64) ([]model.OrderResponse, error)
	ListByDineIn(ctx context.Context, caller policy.Identity, dineIn bool) ([]model.OrderResponse, error)
	GetByID(ctx context.Context, caller policy.Identity, id int64) (*model.OrderResponse, error)
	Total(ctx context.Context, caller policy.Identity, id int64) (*model.OrderTotalResponse, error)
	Update(ctx context.Context, caller policy.Identity, id int64, req *model.OrderUpdateRequest) (*model.OrderResponse, error)
	SetStatus(ctx context.Context, caller policy.Identity, id int64, status model.OrderStatus) (*model.OrderResponse, error)
	AssignPreparer(ctx context.Context, caller policy.Identity, orderID, preparerID int64) (*model.OrderResponse, error)
	Delete(ctx context.Context, caller policy.Identity, id int64) error
}
