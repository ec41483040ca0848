// Package notify composes outbound messages and deep links for placed
// orders. Composition only; dispatch happens outside the core.
package notify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

const countryCode = "91"

// OrderMessage renders the merchant-facing order announcement.
func OrderMessage(o domain.Order, merchantName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order #%s*\n", o.ID)
	fmt.Fprintf(&b, "Store: %s\n", merchantName)
	fmt.Fprintf(&b, "Date: %s at %s\n", o.Date.Format("02/01/2006"), o.Date.Format("3:04:05 PM"))
	b.WriteString("----------------\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%s (%s) x%d: ₹%s\n", it.ProductName, it.Variant, it.Qty, money(it.Price*float64(it.Qty)))
	}
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Sub: ₹%s | GST: ₹%s | Del: ₹%s\n", money(o.Subtotal), money(o.GST), money(o.DeliveryCharge))
	fmt.Fprintf(&b, "*Total: ₹%s*\n", money(o.Total))
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Customer: %s, %s\n", o.Customer.Name, o.Customer.Mobile)
	fmt.Fprintf(&b, "%s, %s\n", o.Customer.Address, o.Customer.City)
	fmt.Fprintf(&b, "Mandal: %s, Dist: %s\n", o.Customer.Mandal, o.Customer.District)
	if o.PaymentMethod == domain.PaymentUPI {
		b.WriteString("\n✅ *Online Payment* (Screenshot Uploaded to Website)")
	} else {
		b.WriteString("\n📦 *COD Order* - Please confirm")
	}
	return b.String()
}

// StatusMessage renders the customer-facing status update.
func StatusMessage(o domain.Order) string {
	return fmt.Sprintf("Update on Order #%s: Your order is now %s.", o.ID, humanStatus(o.Status))
}

// WhatsAppLink builds a wa.me deep link that opens a chat with the given
// mobile number and the message prefilled.
func WhatsAppLink(mobile, text string) string {
	return "https://wa.me/" + countryCode + mobile + "?text=" + url.QueryEscape(text)
}

// UPILink builds a upi://pay intent for the merchant and amount.
func UPILink(settings domain.StoreSettings, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&tn=Order",
		settings.MerchantVPA, url.QueryEscape(settings.MerchantName), money(amount))
}

// money formats like native number printing: no trailing zeros, so 92.5
// stays 92.5 and 630 stays 630.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func humanStatus(s domain.OrderStatus) string {
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
