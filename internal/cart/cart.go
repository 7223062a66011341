// Package cart implements the session shopping cart: an ordered list of
// lines persisted per mutation, discarded wholesale once its time-to-live
// elapses.
package cart

import (
	"github.com/ulmind-com/spice-heaven/internal/menu"
	"github.com/ulmind-com/spice-heaven/pkg/enums/portion"
)

// Line is one cart entry. Repeated adds of the same item stay separate
// lines; the composed order message numbers them in insertion order.
type Line struct {
	Item     menu.MenuItem `json:"item"`
	Quantity int           `json:"quantity"`
	Portion  string        `json:"portion"`
}

// UnitPrice returns the per-unit price for the line, honoring the half
// price only when the item defines one.
func (l Line) UnitPrice() float64 {
	if p := portion.ByName(l.Portion); p != nil {
		return l.Item.UnitPrice(*p)
	}
	return l.Item.Price
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

// Snapshot is the cart's ordered line list at a point in time.
type Snapshot []Line

// TotalPrice sums the line subtotals.
func (s Snapshot) TotalPrice() float64 {
	var total float64
	for _, line := range s {
		total += line.Subtotal()
	}
	return total
}

// ItemCount sums line quantities, not line count. Used for the badge.
func (s Snapshot) ItemCount() int {
	var count int
	for _, line := range s {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the snapshot has no lines.
func (s Snapshot) Empty() bool {
	return len(s) == 0
}
