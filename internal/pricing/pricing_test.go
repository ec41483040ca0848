package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

func fixtureCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:   "p-turmeric",
			Name: "Turmeric",
			Variants: []domain.Variant{
				{ID: "v-100g", Weight: "100g", Price: 50, Stock: 20},
				{ID: "v-250g", Weight: "250g", Price: 110, Stock: 10},
			},
			Active: true,
		},
	}
}

func fixtureSettings() domain.StoreSettings {
	return domain.StoreSettings{
		GSTPercent:            5,
		DeliveryCharge:        40,
		FreeDeliveryThreshold: 500,
	}
}

func fixtureCoupons() []domain.Coupon {
	return []domain.Coupon{
		{ID: "c1", Code: "WELCOME50", Type: domain.CouponFixed, Value: 50, MaxUses: 100, Active: true},
		{ID: "c2", Code: "OFF10", Type: domain.CouponPercentage, Value: 10, Active: true},
		{ID: "c3", Code: "DEAD", Type: domain.CouponFixed, Value: 500, Active: false},
	}
}

func TestComputeFixedCouponScenario(t *testing.T) {
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 2}}

	q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "WELCOME50")

	assert.Equal(t, 100.0, q.Subtotal)
	assert.Equal(t, 50.0, q.Discount)
	assert.Equal(t, 40.0, q.Delivery)
	assert.Equal(t, 2.5, q.GST)
	assert.Equal(t, 92.5, q.Total)
	require.NotNil(t, q.Coupon)
	assert.Equal(t, "c1", q.Coupon.ID)
}

func TestComputeFreeDeliveryScenario(t *testing.T) {
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 12}}

	q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "")

	assert.Equal(t, 600.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 0.0, q.Delivery)
	assert.Equal(t, 30.0, q.GST)
	assert.Equal(t, 630.0, q.Total)
	assert.Nil(t, q.Coupon)
}

func TestComputeDeliveryBoundary(t *testing.T) {
	// subtotal exactly at the threshold still pays delivery; only
	// strictly above is free
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 10}}

	q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "")

	assert.Equal(t, 500.0, q.Subtotal)
	assert.Equal(t, 40.0, q.Delivery)
}

func TestComputePercentageCoupon(t *testing.T) {
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-250g", Qty: 3}}

	q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "OFF10")

	assert.Equal(t, 330.0, q.Subtotal)
	assert.Equal(t, 33.0, q.Discount)
	assert.Equal(t, 14.85, q.GST)
	assert.Equal(t, 40.0, q.Delivery)
	assert.Equal(t, 351.85, q.Total)
}

func TestComputeDiscountExceedsSubtotal(t *testing.T) {
	// discount is not clamped, but the taxable amount and total are
	coupons := []domain.Coupon{
		{ID: "big", Code: "BIG", Type: domain.CouponFixed, Value: 500, Active: true},
	}
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 2}}

	q := Compute(cart, fixtureCatalog(), coupons, fixtureSettings(), "BIG")

	assert.Equal(t, 100.0, q.Subtotal)
	assert.Equal(t, 500.0, q.Discount)
	assert.Equal(t, 0.0, q.GST)
	assert.Equal(t, 40.0, q.Total)
}

func TestComputeCouponMisses(t *testing.T) {
	cart := []domain.CartItem{{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 2}}

	t.Run("no code", func(t *testing.T) {
		q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "")
		assert.Equal(t, 0.0, q.Discount)
		assert.Nil(t, q.Coupon)
	})

	t.Run("unknown code", func(t *testing.T) {
		q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "NOPE")
		assert.Equal(t, 0.0, q.Discount)
		assert.Nil(t, q.Coupon)
	})

	t.Run("inactive coupon", func(t *testing.T) {
		q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "DEAD")
		assert.Equal(t, 0.0, q.Discount)
		assert.Nil(t, q.Coupon)
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		q := Compute(cart, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "welcome50")
		assert.Equal(t, 0.0, q.Discount)
		assert.Nil(t, q.Coupon)
	})
}

func TestComputeStaleCartLines(t *testing.T) {
	cart := []domain.CartItem{
		{ProductID: "p-turmeric", VariantID: "v-100g", Qty: 1},
		{ProductID: "gone", VariantID: "v-100g", Qty: 4},
		{ProductID: "p-turmeric", VariantID: "v-gone", Qty: 4},
	}

	q := Compute(cart, fixtureCatalog(), nil, fixtureSettings(), "")

	assert.Equal(t, 50.0, q.Subtotal)
}

func TestComputeEmptyCart(t *testing.T) {
	q := Compute(nil, fixtureCatalog(), fixtureCoupons(), fixtureSettings(), "WELCOME50")

	assert.Equal(t, 0.0, q.Subtotal)
	// fixed coupon still resolves; everything else clamps at zero
	assert.Equal(t, 50.0, q.Discount)
	assert.Equal(t, 0.0, q.GST)
	assert.Equal(t, 40.0, q.Total)
}

func TestComputeRounding(t *testing.T) {
	catalog := []domain.Product{
		{ID: "p", Variants: []domain.Variant{{ID: "v", Price: 33.33}}, Active: true},
	}
	cart := []domain.CartItem{{ProductID: "p", VariantID: "v", Qty: 3}}

	q := Compute(cart, catalog, nil, fixtureSettings(), "")

	assert.Equal(t, 99.99, q.Subtotal)
	// 99.99 * 5% = 4.9995, rounds half-up to 5.00
	assert.Equal(t, 5.0, q.GST)
	assert.Equal(t, 144.99, q.Total)
}
