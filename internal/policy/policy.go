// Package policy is the single source of truth for who may do what. Every
// mutating entry point in the service layer, and every role-gated read,
// calls one of these functions before touching storage.
//
// All functions are pure: they inspect the caller identity and the target
// entity state, and return nil or a typed domain error (Forbidden for a role
// or ownership mismatch, Validation for an unknown status). They never touch
// shared mutable state and are safe to call concurrently.
package policy

import (
	"fmt"

	"wacdo/internal/model"
)

// Identity is the authenticated caller as carried by a verified token.
type Identity struct {
	UserID int64
	Email  string
	Role   model.Role
}

// IsAdmin reports whether the caller holds the top administrative role.
func (id Identity) IsAdmin() bool {
	return id.Role == model.RoleAdministrateur
}

// statusTransitionRoles is the order-status capability table: for each
// target status, the roles allowed to move an order there. The préparateur
// entry for PREPAREE additionally requires assignment, checked in
// CanSetStatus. Re-queueing to EN_COURS_PREPARATION from any state is the
// supervisory exception; there is no other way out of LIVREE.
var statusTransitionRoles = map[model.OrderStatus][]model.Role{
	model.StatusAwaitingPrep: {model.RoleSuperviseur, model.RoleAdministrateur},
	model.StatusPrepared:     {model.RolePreparateur, model.RoleSuperviseur, model.RoleAdministrateur},
	model.StatusDelivered:    {model.RoleAccueil, model.RoleSuperviseur, model.RoleAdministrateur},
}

// CanSetStatus decides whether the caller may move the order to the target
// status. Setting the status an order already has is idempotent and follows
// the same rule as any other move to that status.
func CanSetStatus(caller Identity, order *model.Order, target model.OrderStatus) error {
	if !target.Valid() {
		return model.ValidationError(fmt.Sprintf("unknown order status %q", target))
	}

	allowed := statusTransitionRoles[target]
	if !roleIn(caller.Role, allowed) {
		return model.ForbiddenError(fmt.Sprintf("status change to %s", target), allowed...)
	}

	// A préparateur may only mark orders assigned to them as prepared.
	if caller.Role == model.RolePreparateur {
		if order.PreparerID == nil || *order.PreparerID != caller.UserID {
			return model.ForbiddenError("status change on an order assigned to another preparer",
				model.RoleSuperviseur, model.RoleAdministrateur)
		}
	}

	return nil
}

// CanAssignPreparer decides whether the caller may set or change an order's
// assigned preparer.
func CanAssignPreparer(caller Identity) error {
	if caller.Role == model.RoleSuperviseur || caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("preparer assignment", model.RoleSuperviseur, model.RoleAdministrateur)
}

// CanReadOrder decides whether the caller may read a single order. Any
// authenticated role reads freely except a préparateur, who only sees orders
// assigned to them.
func CanReadOrder(caller Identity, order *model.Order) error {
	if caller.Role != model.RolePreparateur {
		return nil
	}
	if order.PreparerID != nil && *order.PreparerID == caller.UserID {
		return nil
	}
	return model.ForbiddenError("reading an order assigned to another preparer",
		model.RoleAccueil, model.RoleSuperviseur, model.RoleAdministrateur)
}

// CanListAllOrders decides whether the caller may list every order.
func CanListAllOrders(caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("listing all orders", model.RoleAdministrateur)
}

// CanListOrdersByPreparer decides whether the caller may list the orders
// assigned to the given preparer. A préparateur may only pass their own id.
func CanListOrdersByPreparer(caller Identity, preparerID int64) error {
	switch caller.Role {
	case model.RoleSuperviseur, model.RoleAdministrateur:
		return nil
	case model.RolePreparateur:
		if preparerID == caller.UserID {
			return nil
		}
		return model.ForbiddenError("listing another preparer's orders",
			model.RoleSuperviseur, model.RoleAdministrateur)
	default:
		return model.ForbiddenError("listing orders by preparer",
			model.RolePreparateur, model.RoleSuperviseur, model.RoleAdministrateur)
	}
}

// CanCreateOrder decides whether the caller may create an order. Any
// authenticated role may; the caller still reaches this function only after
// token verification.
func CanCreateOrder(caller Identity) error {
	if !caller.Role.Valid() {
		return model.ForbiddenError("order creation", model.Roles...)
	}
	return nil
}

// CanUpdateOrder decides whether the caller may fully replace an order.
func CanUpdateOrder(caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("order update", model.RoleAdministrateur)
}

// CanDeleteOrder decides whether the caller may delete an order.
func CanDeleteOrder(caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("order deletion", model.RoleAdministrateur)
}

// CanManageCatalog decides whether the caller may create, update or delete
// products and menus.
func CanManageCatalog(caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("catalog management", model.RoleAdministrateur)
}

// CanToggleAvailability decides whether the caller may flip a product's or
// menu's availability flag.
func CanToggleAvailability(caller Identity) error {
	if caller.Role == model.RoleSuperviseur || caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("availability toggle", model.RoleSuperviseur, model.RoleAdministrateur)
}

// CanManageUsers decides whether the caller may administer staff accounts.
func CanManageUsers(caller Identity) error {
	if caller.IsAdmin() {
		return nil
	}
	return model.ForbiddenError("user management", model.RoleAdministrateur)
}

// ValidateSelfUpdate checks a caller's update to their own profile. A
// non-administrator may change only email and password; name or role in the
// payload is rejected.
func ValidateSelfUpdate(caller Identity, req *model.UserUpdateRequest) error {
	if caller.IsAdmin() {
		return nil
	}
	if req.Name != nil || req.Role != nil {
		return model.ProtectedFieldsError()
	}
	return nil
}

// OrderScope narrows order list reads for the caller: a préparateur only
// sees their own assignments, everyone else sees everything. The returned
// pointer is nil when no narrowing applies.
func OrderScope(caller Identity) *int64 {
	if caller.Role == model.RolePreparateur {
		id := caller.UserID
		return &id
	}
	return nil
}

func roleIn(role model.Role, roles []model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
