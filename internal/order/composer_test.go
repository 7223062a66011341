package order

import (
	"strings"
	"testing"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/internal/menu"
)

var (
	biryaniLine = cart.Line{
		Item:     menu.MenuItem{ShortCode: "chicken-briyani", Name: "Chicken Biryani", Price: 120},
		Quantity: 2,
		Portion:  "full",
	}
	chowmeinHalfLine = cart.Line{
		Item:     menu.MenuItem{ShortCode: "veg-chow", Name: "Veg Chowmein", Price: 50, HalfPrice: 30},
		Quantity: 3,
		Portion:  "half",
	}
)

var testAddress = Address{
	Name:    "Asha Rao",
	Phone:   "9876543210",
	Address: "221B Hill Cart Road, Siliguri",
}

func TestComposeBasicOrder(t *testing.T) {
	composer := NewComposer("")
	got := composer.Compose(cart.Snapshot{biryaniLine}, testAddress)

	want := "🍽️ *New Order Request*\n" +
		"\n" +
		"📦 *Items:*\n" +
		"1. Chicken Biryani\n" +
		"   Qty: 2 × ₹120 = ₹240\n" +
		"\n" +
		"💵 *Total Amount:* ₹240\n" +
		"\n" +
		"👤 *Customer Details:*\n" +
		"Name: Asha Rao\n" +
		"Phone: 9876543210\n" +
		"\n" +
		"📍 *Delivery Address:*\n" +
		"221B Hill Cart Road, Siliguri\n" +
		"\n" +
		"\n" +
		"Please confirm this order. Thank you! 🙏"

	if got != want {
		t.Errorf("Compose() =\n%q\nwant\n%q", got, want)
	}
}

func TestComposePortionLabels(t *testing.T) {
	composer := NewComposer("")
	got := composer.Compose(cart.Snapshot{biryaniLine, chowmeinHalfLine}, testAddress)

	// Items without a half price carry no portion suffix.
	if strings.Contains(got, "Chicken Biryani (") {
		t.Error("single-portion item rendered with a portion suffix")
	}
	if !strings.Contains(got, "2. Veg Chowmein (Half)\n   Qty: 3 × ₹30 = ₹90") {
		t.Errorf("half-portion line missing or wrong:\n%s", got)
	}
	if !strings.Contains(got, "💵 *Total Amount:* ₹330") {
		t.Errorf("total wrong:\n%s", got)
	}
}

func TestComposeWithLocationAndInstructions(t *testing.T) {
	composer := NewComposer("")
	address := testAddress
	address.Instructions = "Ring the bell twice"
	address.Location = &Location{
		Lat:     26.7271,
		Lng:     88.3953,
		Address: "MG Road, Siliguri, West Bengal, India",
	}

	got := composer.Compose(cart.Snapshot{biryaniLine}, address)

	wantLocation := "📌 *Exact Location:*\n" +
		"MG Road, Siliguri, West Bengal, India\n" +
		"\n" +
		"🗺️ *Map Link:*\n" +
		"https://www.google.com/maps?q=26.7271,88.3953"
	if !strings.Contains(got, wantLocation) {
		t.Errorf("location block missing or wrong:\n%s", got)
	}
	if !strings.Contains(got, "📝 *Special Instructions:*\nRing the bell twice\nPlease confirm this order. Thank you! 🙏") {
		t.Errorf("instructions block missing or wrong:\n%s", got)
	}
}

func TestOrderURL(t *testing.T) {
	composer := NewComposer("")
	got := composer.OrderURL("Hello & welcome")

	want := "https://wa.me/+918670974311?text=Hello%20%26%20welcome"
	if got != want {
		t.Errorf("OrderURL() = %q, want %q", got, want)
	}
}

func TestOrderURLCustomNumber(t *testing.T) {
	composer := NewComposer("+911234567890")
	got := composer.OrderURL("hi")

	if !strings.HasPrefix(got, "https://wa.me/+911234567890?text=") {
		t.Errorf("OrderURL() = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "wholeRupees", in: 240, want: "240"},
		{name: "halfRupee", in: 87.5, want: "87.5"},
		{name: "zero", in: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAmount(tt.in); got != tt.want {
				t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
