package order

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ulmind-com/spice-heaven/internal/cart"
	"github.com/ulmind-com/spice-heaven/pkg/enums/portion"
)

// DefaultWhatsAppNumber is the restaurant's order line.
const DefaultWhatsAppNumber = "+918670974311"

// Composer renders a cart plus delivery details into the WhatsApp
// message the restaurant confirms orders from.
type Composer struct {
	number string
}

func NewComposer(number string) *Composer {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	return &Composer{number: number}
}

// Compose renders the order message.
func (c *Composer) Compose(lines cart.Snapshot, address Address) string {
	var b strings.Builder

	b.WriteString("🍽️ *New Order Request*\n\n")
	b.WriteString("📦 *Items:*\n")
	b.WriteString(itemsList(lines))
	b.WriteString("\n\n💵 *Total Amount:* ₹")
	b.WriteString(formatAmount(lines.TotalPrice()))
	b.WriteString("\n\n👤 *Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", address.Name)
	fmt.Fprintf(&b, "Phone: %s\n", address.Phone)
	b.WriteString("\n📍 *Delivery Address:*\n")
	b.WriteString(address.Address)
	b.WriteString("\n")

	if loc := address.Location; loc != nil {
		b.WriteString("\n📌 *Exact Location:*\n")
		b.WriteString(loc.Address)
		b.WriteString("\n\n🗺️ *Map Link:*\n")
		b.WriteString(mapLink(loc.Lat, loc.Lng))
	}
	b.WriteString("\n\n")

	if address.Instructions != "" {
		b.WriteString("📝 *Special Instructions:*\n")
		b.WriteString(address.Instructions)
		b.WriteString("\n")
	}
	b.WriteString("Please confirm this order. Thank you! 🙏")

	return b.String()
}

// OrderURL wraps the composed message in a wa.me deep link.
func (c *Composer) OrderURL(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.number, encodeComponent(message))
}

func itemsList(lines cart.Snapshot) string {
	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		portionText := ""
		if line.Item.HasHalf() {
			portionText = fmt.Sprintf(" (%s)", portionLabel(line.Portion))
		}
		rendered = append(rendered, fmt.Sprintf("%d. %s%s\n   Qty: %d × ₹%s = ₹%s",
			i+1, line.Item.Name, portionText,
			line.Quantity, formatAmount(line.UnitPrice()), formatAmount(line.Subtotal())))
	}
	return strings.Join(rendered, "\n\n")
}

func portionLabel(name string) string {
	if p := portion.ByName(name); p != nil {
		return p.Label()
	}
	return portion.Portions.Full.Label()
}

func mapLink(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", lat, lng)
}

// formatAmount prints prices without trailing zeros, so whole-rupee
// amounts show as ₹120 and half-portion splits as ₹87.5.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// encodeComponent percent-encodes for a query value, with spaces as %20
// rather than + so WhatsApp renders the text verbatim.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
