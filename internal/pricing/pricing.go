// Package pricing computes order totals. It is a pure function of the cart,
// the catalog, the coupon set and the store settings; nothing here mutates
// state or performs I/O.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

// Quote is the priced breakdown of a cart. Coupon is nil when no active
// coupon matched the supplied code.
type Quote struct {
	Subtotal float64
	Discount float64
	Delivery float64
	GST      float64
	Total    float64
	Coupon   *domain.Coupon
}

var hundred = decimal.NewFromInt(100)

// Compute prices the cart. Cart lines whose product or variant no longer
// exists contribute zero. An unknown or inactive coupon code is silently
// ignored. Each derived figure is rounded half-up to 2 decimal places.
func Compute(cart []domain.CartItem, products []domain.Product, coupons []domain.Coupon, settings domain.StoreSettings, couponCode string) Quote {
	subtotal := decimal.Zero
	for _, line := range cart {
		variant, ok := resolveVariant(products, line.ProductID, line.VariantID)
		if !ok {
			continue
		}
		price := decimal.NewFromFloat(variant.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	var applied *domain.Coupon
	if couponCode != "" {
		for i := range coupons {
			c := coupons[i]
			if !c.Matches(couponCode) {
				continue
			}
			value := decimal.NewFromFloat(c.Value)
			if c.Type == domain.CouponPercentage {
				discount = subtotal.Mul(value).Div(hundred)
			} else {
				discount = value
			}
			applied = &c
			break
		}
	}
	discount = discount.Round(2)

	delivery := decimal.Zero
	if !subtotal.GreaterThan(decimal.NewFromFloat(settings.FreeDeliveryThreshold)) {
		delivery = decimal.NewFromFloat(settings.DeliveryCharge)
	}

	taxable := decimal.Max(decimal.Zero, subtotal.Sub(discount))
	gst := taxable.Mul(decimal.NewFromFloat(settings.GSTPercent)).Div(hundred).Round(2)
	total := decimal.Max(decimal.Zero, taxable.Add(gst).Add(delivery)).Round(2)

	return Quote{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Delivery: delivery.InexactFloat64(),
		GST:      gst.InexactFloat64(),
		Total:    total.InexactFloat64(),
		Coupon:   applied,
	}
}

func resolveVariant(products []domain.Product, productID, variantID string) (domain.Variant, bool) {
	for _, p := range products {
		if p.ID != productID {
			continue
		}
		return p.Variant(variantID)
	}
	return domain.Variant{}, false
}
