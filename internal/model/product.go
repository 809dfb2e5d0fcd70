package model

// ProductType tags what kind of sellable unit a product is.
type ProductType string

const (
	ProductTypeBurger         ProductType = "BURGER"
	ProductTypeAccompagnement ProductType = "ACCOMPAGNEMENT"
	ProductTypeBoisson        ProductType = "BOISSON"
	ProductTypeDessert        ProductType = "DESSERT"
	ProductTypeSalade         ProductType = "SALADE"
	ProductTypeSauce          ProductType = "SAUCE"
)

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeBurger, ProductTypeAccompagnement, ProductTypeBoisson,
		ProductTypeDessert, ProductTypeSalade, ProductTypeSauce:
		return true
	}
	return false
}

// Product represents a sellable unit: a single item or a configurable option
// such as a side or a drink. JSON keys keep the French wire format the
// clients expect.
type Product struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"nom" db:"nom"`
	Description string      `json:"description" db:"description"`
	PriceHT     float64     `json:"prixHT" db:"prix_ht"`
	Image       string      `json:"image" db:"image"`
	Options     []string    `json:"options" db:"options"`
	Available   bool        `json:"disponibilite" db:"disponibilite"`
	Type        ProductType `json:"type" db:"type"`
}

// ProductCreateRequest is the payload for creating a product.
type ProductCreateRequest struct {
	Name        string      `json:"nom"`
	Description string      `json:"description"`
	PriceHT     float64     `json:"prixHT"`
	Image       string      `json:"image"`
	Options     []string    `json:"options"`
	Available   *bool       `json:"disponibilite"`
	Type        ProductType `json:"type"`
}

// ProductUpdateRequest is the payload for updating a product. Absent fields
// are left unchanged.
type ProductUpdateRequest struct {
	Name        *string      `json:"nom,omitempty"`
	Description *string      `json:"description,omitempty"`
	PriceHT     *float64     `json:"prixHT,omitempty"`
	Image       *string      `json:"image,omitempty"`
	Options     []string     `json:"options,omitempty"`
	Available   *bool        `json:"disponibilite,omitempty"`
	Type        *ProductType `json:"type,omitempty"`
}
