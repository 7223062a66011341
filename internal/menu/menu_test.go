package menu

import (
	"testing"

	"github.com/ulmind-com/spice-heaven/pkg/enums/portion"
)

func TestMenuItemUnitPrice(t *testing.T) {
	tests := []struct {
		name    string
		item    MenuItem
		portion portion.Portion
		want    float64
	}{
		{
			name:    "fullPortion",
			item:    MenuItem{Name: "Chicken Biryani", Price: 120},
			portion: portion.Portions.Full,
			want:    120,
		},
		{
			name:    "halfPortionWithHalfPrice",
			item:    MenuItem{Name: "Veg Chowmein", Price: 50, HalfPrice: 30},
			portion: portion.Portions.Half,
			want:    30,
		},
		{
			name:    "halfPortionWithoutHalfPrice",
			item:    MenuItem{Name: "Roti", Price: 5},
			portion: portion.Portions.Half,
			want:    5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.UnitPrice(tt.portion); got != tt.want {
				t.Errorf("UnitPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMenuItemHasHalf(t *testing.T) {
	tests := []struct {
		name string
		item MenuItem
		want bool
	}{
		{
			name: "withHalfPrice",
			item: MenuItem{HalfPrice: 200},
			want: true,
		},
		{
			name: "withoutHalfPrice",
			item: MenuItem{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.HasHalf(); got != tt.want {
				t.Errorf("HasHalf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	categories := catalog.Categories()
	if len(categories) == 0 {
		t.Fatal("DefaultCatalog() returned no categories")
	}

	if categories[0].Name != "All Items" {
		t.Errorf("first category = %q, want %q", categories[0].Name, "All Items")
	}

	// All Items aggregates every other category
	var total int
	for _, cat := range categories[1:] {
		total += len(cat.Items)
	}
	if len(categories[0].Items) != total {
		t.Errorf("All Items has %d items, want %d", len(categories[0].Items), total)
	}
}

func TestCatalogItem(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name      string
		shortCode string
		wantOK    bool
		wantName  string
	}{
		{
			name:      "knownItem",
			shortCode: "chicken-briyani",
			wantOK:    true,
			wantName:  "Chicken Biryani",
		},
		{
			name:      "halfPortionItem",
			shortCode: "chicken-tandoor",
			wantOK:    true,
			wantName:  "Tandooro Full",
		},
		{
			name:      "unknownItem",
			shortCode: "no-such-dish",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := catalog.Item(tt.shortCode)
			if ok != tt.wantOK {
				t.Fatalf("Item(%q) ok = %v, want %v", tt.shortCode, ok, tt.wantOK)
			}
			if ok && item.Name != tt.wantName {
				t.Errorf("Item(%q).Name = %q, want %q", tt.shortCode, item.Name, tt.wantName)
			}
		})
	}
}
