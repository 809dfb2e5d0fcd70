package policy

import (
	"testing"

	"wacdo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(role model.Role) Identity {
	return Identity{UserID: 42, Email: "staff@wacdo.fr", Role: role}
}

func orderAssignedTo(preparerID int64) *model.Order {
	return &model.Order{ID: 7, Status: model.StatusAwaitingPrep, PreparerID: &preparerID}
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindForbidden, de.Kind)
}

func TestCanSetStatus_RoleMatrix(t *testing.T) {
	unassigned := &model.Order{ID: 7, Status: model.StatusAwaitingPrep}

	tests := []struct {
		name    string
		role    model.Role
		target  model.OrderStatus
		allowed bool
	}{
		{"admin requeues", model.RoleAdministrateur, model.StatusAwaitingPrep, true},
		{"admin prepares", model.RoleAdministrateur, model.StatusPrepared, true},
		{"admin delivers", model.RoleAdministrateur, model.StatusDelivered, true},
		{"superviseur requeues", model.RoleSuperviseur, model.StatusAwaitingPrep, true},
		{"superviseur prepares", model.RoleSuperviseur, model.StatusPrepared, true},
		{"superviseur delivers", model.RoleSuperviseur, model.StatusDelivered, true},
		{"preparateur cannot requeue", model.RolePreparateur, model.StatusAwaitingPrep, false},
		{"preparateur cannot deliver", model.RolePreparateur, model.StatusDelivered, false},
		{"accueil cannot requeue", model.RoleAccueil, model.StatusAwaitingPrep, false},
		{"accueil cannot prepare", model.RoleAccueil, model.StatusPrepared, false},
		{"accueil delivers", model.RoleAccueil, model.StatusDelivered, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSetStatus(identity(tt.role), unassigned, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				requireForbidden(t, err)
			}
		})
	}
}

func TestCanSetStatus_PreparerOwnership(t *testing.T) {
	caller := identity(model.RolePreparateur)

	t.Run("own assignment", func(t *testing.T) {
		assert.NoError(t, CanSetStatus(caller, orderAssignedTo(caller.UserID), model.StatusPrepared))
	})

	t.Run("someone else's assignment", func(t *testing.T) {
		requireForbidden(t, CanSetStatus(caller, orderAssignedTo(caller.UserID+1), model.StatusPrepared))
	})

	t.Run("unassigned order", func(t *testing.T) {
		requireForbidden(t, CanSetStatus(caller, &model.Order{ID: 7}, model.StatusPrepared))
	})
}

func TestCanSetStatus_IdempotentSelfTransition(t *testing.T) {
	// Setting the status an order already has follows the same rule as any
	// other move to that status.
	order := &model.Order{ID: 7, Status: model.StatusDelivered}
	assert.NoError(t, CanSetStatus(identity(model.RoleAccueil), order, model.StatusDelivered))
	requireForbidden(t, CanSetStatus(identity(model.RoleAccueil), order, model.StatusAwaitingPrep))
}

func TestCanSetStatus_UnknownStatus(t *testing.T) {
	err := CanSetStatus(identity(model.RoleAdministrateur), &model.Order{ID: 7}, "ANNULEE")
	require.Error(t, err)
	de, ok := model.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, model.KindValidation, de.Kind)
}

func TestCanAssignPreparer(t *testing.T) {
	assert.NoError(t, CanAssignPreparer(identity(model.RoleAdministrateur)))
	assert.NoError(t, CanAssignPreparer(identity(model.RoleSuperviseur)))
	requireForbidden(t, CanAssignPreparer(identity(model.RolePreparateur)))
	requireForbidden(t, CanAssignPreparer(identity(model.RoleAccueil)))
}

func TestCanReadOrder(t *testing.T) {
	caller := identity(model.RolePreparateur)

	assert.NoError(t, CanReadOrder(identity(model.RoleAccueil), orderAssignedTo(99)))
	assert.NoError(t, CanReadOrder(identity(model.RoleSuperviseur), orderAssignedTo(99)))
	assert.NoError(t, CanReadOrder(identity(model.RoleAdministrateur), orderAssignedTo(99)))
	assert.NoError(t, CanReadOrder(caller, orderAssignedTo(caller.UserID)))
	requireForbidden(t, CanReadOrder(caller, orderAssignedTo(caller.UserID+1)))
	requireForbidden(t, CanReadOrder(caller, &model.Order{ID: 7}))
}

func TestCanListAllOrders(t *testing.T) {
	assert.NoError(t, CanListAllOrders(identity(model.RoleAdministrateur)))
	requireForbidden(t, CanListAllOrders(identity(model.RoleSuperviseur)))
	requireForbidden(t, CanListAllOrders(identity(model.RolePreparateur)))
	requireForbidden(t, CanListAllOrders(identity(model.RoleAccueil)))
}

func TestCanListOrdersByPreparer(t *testing.T) {
	caller := identity(model.RolePreparateur)

	assert.NoError(t, CanListOrdersByPreparer(identity(model.RoleAdministrateur), 99))
	assert.NoError(t, CanListOrdersByPreparer(identity(model.RoleSuperviseur), 99))
	assert.NoError(t, CanListOrdersByPreparer(caller, caller.UserID))
	requireForbidden(t, CanListOrdersByPreparer(caller, caller.UserID+1))
	requireForbidden(t, CanListOrdersByPreparer(identity(model.RoleAccueil), 99))
}

func TestCanCreateOrder(t *testing.T) {
	for _, role := range model.Roles {
		assert.NoError(t, CanCreateOrder(identity(role)), string(role))
	}
	requireForbidden(t, CanCreateOrder(Identity{UserID: 1, Role: "CLIENT"}))
}

func TestAdminOnlyChecks(t *testing.T) {
	checks := map[string]func(Identity) error{
		"update order":   CanUpdateOrder,
		"delete order":   CanDeleteOrder,
		"manage catalog": CanManageCatalog,
		"manage users":   CanManageUsers,
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, check(identity(model.RoleAdministrateur)))
			requireForbidden(t, check(identity(model.RoleSuperviseur)))
			requireForbidden(t, check(identity(model.RolePreparateur)))
			requireForbidden(t, check(identity(model.RoleAccueil)))
		})
	}
}

func TestCanToggleAvailability(t *testing.T) {
	assert.NoError(t, CanToggleAvailability(identity(model.RoleAdministrateur)))
	assert.NoError(t, CanToggleAvailability(identity(model.RoleSuperviseur)))
	requireForbidden(t, CanToggleAvailability(identity(model.RolePreparateur)))
	requireForbidden(t, CanToggleAvailability(identity(model.RoleAccueil)))
}

func TestValidateSelfUpdate(t *testing.T) {
	name := "New Name"
	email := "new@wacdo.fr"
	password := "secret"
	role := model.RoleAdministrateur

	t.Run("non-admin may change email and password", func(t *testing.T) {
		req := &model.UserUpdateRequest{Email: &email, Password: &password}
		assert.NoError(t, ValidateSelfUpdate(identity(model.RoleAccueil), req))
	})

	t.Run("non-admin cannot change name", func(t *testing.T) {
		err := ValidateSelfUpdate(identity(model.RolePreparateur), &model.UserUpdateRequest{Name: &name})
		require.Error(t, err)
		de, ok := model.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, model.ErrCodeProtectedFields, de.Code)
	})

	t.Run("non-admin cannot change role", func(t *testing.T) {
		err := ValidateSelfUpdate(identity(model.RoleAccueil), &model.UserUpdateRequest{Role: &role})
		require.Error(t, err)
	})

	t.Run("admin may change everything", func(t *testing.T) {
		req := &model.UserUpdateRequest{Name: &name, Role: &role}
		assert.NoError(t, ValidateSelfUpdate(identity(model.RoleAdministrateur), req))
	})
}

func TestOrderScope(t *testing.T) {
	caller := identity(model.RolePreparateur)
	scope := OrderScope(caller)
	require.NotNil(t, scope)
	assert.Equal(t, caller.UserID, *scope)

	assert.Nil(t, OrderScope(identity(model.RoleAdministrateur)))
	assert.Nil(t, OrderScope(identity(model.RoleSuperviseur)))
	assert.Nil(t, OrderScope(identity(model.RoleAccueil)))
}
