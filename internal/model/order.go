package model

import "time"

// OrderStatus is the order lifecycle state. Wire values keep the French
// labels the clients expect.
type OrderStatus string

const (
	// StatusAwaitingPrep is the initial state of every order.
	StatusAwaitingPrep OrderStatus = "EN_COURS_PREPARATION"
	// StatusPrepared means the assigned preparer finished the order.
	StatusPrepared OrderStatus = "PREPAREE"
	// StatusDelivered is terminal; only a supervisory re-queue leaves it.
	StatusDelivered OrderStatus = "LIVREE"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAwaitingPrep, StatusPrepared, StatusDelivered:
		return true
	}
	return false
}

// VATRate is the flat tax rate applied to order totals.
const VATRate = 0.20

// Order represents one customer ticket.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	Date        time.Time   `json:"date" db:"date"`
	TableNumber *int        `json:"chevalet" db:"chevalet"`
	DineIn      bool        `json:"sur_place" db:"sur_place"`
	Status      OrderStatus `json:"statut" db:"statut"`
	PreparerID  *int64      `json:"preparateur_id" db:"preparateur_id"`
}

// MenuSelection names a menu line item together with the option products
// (side, drink) chosen for it within the order.
type MenuSelection struct {
	MenuID           int64   `json:"menu_id"`
	OptionProductIDs []int64 `json:"option_product_ids"`
}

// OrderCreateRequest is the payload for composing an order. MenuIDs is the
// legacy form carrying no option selections; MenuSelections is the current
// form. Both may appear in one request.
type OrderCreateRequest struct {
	TableNumber    *int            `json:"chevalet"`
	DineIn         *bool           `json:"sur_place"`
	PreparerID     *int64          `json:"preparateur_id"`
	ProductIDs     []int64         `json:"product_ids"`
	MenuIDs        []int64         `json:"menu_ids"`
	MenuSelections []MenuSelection `json:"menu_selections"`
}

// OrderUpdateRequest is the payload for a full order update (admin only).
type OrderUpdateRequest struct {
	TableNumber    *int            `json:"chevalet,omitempty"`
	DineIn         *bool           `json:"sur_place,omitempty"`
	Status         *OrderStatus    `json:"statut,omitempty"`
	PreparerID     *int64          `json:"preparateur_id,omitempty"`
	ProductIDs     []int64         `json:"product_ids,omitempty"`
	MenuIDs        []int64         `json:"menu_ids,omitempty"`
	MenuSelections []MenuSelection `json:"menu_selections,omitempty"`
}

// OrderStatusRequest carries a status change.
type OrderStatusRequest struct {
	Status OrderStatus `json:"statut"`
}

// OrderResponse is the enriched read view of an order. Menus carry either
// their default composition or, when option rows exist for that menu within
// this order, exactly the selected option products.
type OrderResponse struct {
	ID          int64       `json:"id"`
	Date        time.Time   `json:"date"`
	TableNumber *int        `json:"chevalet"`
	DineIn      bool        `json:"sur_place"`
	Status      OrderStatus `json:"statut"`
	PreparerID  *int64      `json:"preparateur_id"`
	Products    []Product   `json:"produits"`
	Menus       []Menu      `json:"menus"`
	TotalTTC    float64     `json:"total_ttc"`
}

// OrderTotalResponse is the payload of the order total endpoint.
type OrderTotalResponse struct {
	OrderID  int64   `json:"order_id"`
	TotalTTC float64 `json:"total_ttc"`
}
