package menu

import "github.com/ulmind-com/spice-heaven/pkg/enums/portion"

// MenuItem represents a dish on the restaurant's menu. Items are immutable
// reference data owned by the static catalog; the cart holds shared
// references and never mutates them.
type MenuItem struct {
	ShortCode   string  `json:"short_code"` // Unique within the catalog
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	HalfPrice   float64 `json:"half_price,omitempty"` // 0 means no half portion
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// HasHalf reports whether the item offers a half portion.
func (m MenuItem) HasHalf() bool {
	return m.HalfPrice > 0
}

// UnitPrice returns the price for the given portion. The half price applies
// only when the item defines one; otherwise the full price is charged.
func (m MenuItem) UnitPrice(p portion.Portion) float64 {
	if p.Name == portion.Portions.Half.Name && m.HasHalf() {
		return m.HalfPrice
	}
	return m.Price
}

// Category groups items for display. Order is significant, both for the
// category list and the items within it.
type Category struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}
