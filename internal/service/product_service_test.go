package service

import (
	"context"
	"testing"

	"wacdo/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (*MockProductRepository, ProductService) {
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, zerolog.Nop())
	return productRepo, svc
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	productRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Product).ID = 3
	}).Return(nil)

	product, err := svc.Create(ctx, caller(model.RoleAdministrateur), &model.ProductCreateRequest{
		Name:    "Frites",
		PriceHT: 2.50,
		Type:    model.ProductTypeAccompagnement,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), product.ID)
	// Availability defaults to true, options to an empty list.
	assert.True(t, product.Available)
	assert.NotNil(t, product.Options)
	assert.Empty(t, product.Options)
}

func TestProductService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()
	admin := caller(model.RoleAdministrateur)

	tests := []struct {
		name string
		req  *model.ProductCreateRequest
	}{
		{"missing name", &model.ProductCreateRequest{Type: model.ProductTypeBurger, PriceHT: 5}},
		{"unknown type", &model.ProductCreateRequest{Name: "Big Wac", Type: "PIZZA", PriceHT: 5}},
		{"negative price", &model.ProductCreateRequest{Name: "Big Wac", Type: model.ProductTypeBurger, PriceHT: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, admin, tt.req)
			require.Error(t, err)
			de, ok := model.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, model.KindValidation, de.Kind)
		})
	}

	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Create_AdminOnly(t *testing.T) {
	ctx := context.Background()
	_, svc := newProductFixture()

	req := &model.ProductCreateRequest{Name: "Frites", Type: model.ProductTypeAccompagnement, PriceHT: 2.50}

	for _, role := range []model.Role{model.RoleSuperviseur, model.RolePreparateur, model.RoleAccueil} {
		_, err := svc.Create(ctx, caller(role), req)
		require.Error(t, err, string(role))
	}
}

func TestProductService_ListByType(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	productRepo.On("ListByType", ctx, model.ProductTypeBoisson).Return([]model.Product{
		{ID: 5, Name: "Coca-Cola", Type: model.ProductTypeBoisson},
	}, nil)

	products, err := svc.ListByType(ctx, model.ProductTypeBoisson)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = svc.ListByType(ctx, "PIZZA")
	require.Error(t, err)
}

func TestProductService_List_NeverNil(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	productRepo.On("List", ctx).Return(nil, nil)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	current := &model.Product{ID: 3, Name: "Frites", PriceHT: 2.50, Available: true, Type: model.ProductTypeAccompagnement}
	price := 2.80

	productRepo.On("GetByID", ctx, int64(3)).Return(current, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.Update(ctx, caller(model.RoleAdministrateur), 3, &model.ProductUpdateRequest{PriceHT: &price})

	require.NoError(t, err)
	assert.Equal(t, 2.80, product.PriceHT)
	assert.Equal(t, "Frites", product.Name)
}

func TestProductService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	productRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	_, err := svc.Update(ctx, caller(model.RoleAdministrateur), 404, &model.ProductUpdateRequest{})
	require.Error(t, err)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindNotFound, de.Kind)
}

func TestProductService_ToggleAvailability(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	toggled := &model.Product{ID: 3, Name: "Frites", Available: false}
	productRepo.On("ToggleAvailability", ctx, int64(3)).Return(toggled, nil)

	t.Run("superviseur may toggle", func(t *testing.T) {
		product, err := svc.ToggleAvailability(ctx, caller(model.RoleSuperviseur), 3)
		require.NoError(t, err)
		assert.False(t, product.Available)
	})

	t.Run("accueil may not", func(t *testing.T) {
		_, err := svc.ToggleAvailability(ctx, caller(model.RoleAccueil), 3)
		require.Error(t, err)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	productRepo, svc := newProductFixture()

	productRepo.On("Delete", ctx, int64(3)).Return(true, nil)
	require.NoError(t, svc.Delete(ctx, caller(model.RoleAdministrateur), 3))

	productRepo.On("Delete", ctx, int64(404)).Return(false, nil)
	err := svc.Delete(ctx, caller(model.RoleAdministrateur), 404)
	require.Error(t, err)
}
