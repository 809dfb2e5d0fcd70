package model

// MenuType tags a composite offering (combo) family.
type MenuType string

const (
	MenuTypeBestOf     MenuType = "BEST_OF"
	MenuTypeMaxiBestOf MenuType = "MAXI_BEST_OF"
	MenuTypeEnfant     MenuType = "ENFANT"
	MenuTypeSignature  MenuType = "SIGNATURE"
)

// Valid reports whether t is a known menu type.
func (t MenuType) Valid() bool {
	switch t {
	case MenuTypeBestOf, MenuTypeMaxiBestOf, MenuTypeEnfant, MenuTypeSignature:
		return true
	}
	return false
}

// Menu is a named composite offering with its own price. Products holds the
// menu's default composition; inside an order view it may be replaced by the
// options selected for that order.
type Menu struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"nom" db:"nom"`
	Description string    `json:"description" db:"description"`
	PriceHT     float64   `json:"prixHT" db:"prix_ht"`
	Image       string    `json:"image" db:"image"`
	Available   bool      `json:"disponibilite" db:"disponibilite"`
	Type        MenuType  `json:"menu_type" db:"menu_type"`
	Products    []Product `json:"produits"`
}

// MenuCreateRequest is the payload for creating a menu.
type MenuCreateRequest struct {
	Name        string   `json:"nom"`
	Description string   `json:"description"`
	PriceHT     float64  `json:"prixHT"`
	Image       string   `json:"image"`
	Available   *bool    `json:"disponibilite"`
	Type        MenuType `json:"menu_type"`
	ProductIDs  []int64  `json:"product_ids"`
}

// MenuUpdateRequest is the payload for updating a menu. Absent fields are
// left unchanged; a non-nil ProductIDs replaces the default composition.
type MenuUpdateRequest struct {
	Name        *string   `json:"nom,omitempty"`
	Description *string   `json:"description,omitempty"`
	PriceHT     *float64  `json:"prixHT,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Available   *bool     `json:"disponibilite,omitempty"`
	Type        *MenuType `json:"menu_type,omitempty"`
	ProductIDs  []int64   `json:"product_ids,omitempty"`
}

// MenuProductsRequest adds or removes products from a menu's composition.
type MenuProductsRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}
