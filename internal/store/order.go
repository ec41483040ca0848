package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dwikikusuma/masala-store/internal/domain"
	"github.com/dwikikusuma/masala-store/internal/pricing"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrScreenshotRequired = errors.New("payment screenshot is required for UPI orders")
)

// Quote prices the current cart against the current catalog and settings.
func (s *Store) Quote(couponCode string) pricing.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pricing.Compute(s.cart, s.products, s.coupons, s.settings, couponCode)
}

// PlaceOrder snapshots the cart into an immutable order, increments the
// resolved coupon's usage counter exactly once, and clears the cart.
// Preconditions are checked before any state mutates; a rejected order
// leaves everything untouched.
func (s *Store) PlaceOrder(customer domain.UserDetails, method domain.PaymentMethod, screenshot, couponCode string) (domain.Order, error) {
	if method == domain.PaymentUPI && screenshot == "" {
		return domain.Order{}, ErrScreenshotRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	quote := pricing.Compute(s.cart, s.products, s.coupons, s.settings, couponCode)

	items := make([]domain.OrderItem, 0, len(s.cart))
	for _, line := range s.cart {
		p, v, ok := s.resolveLineLocked(line)
		if !ok {
			// stale reference, already priced as zero
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Variant:     v.Weight,
			Price:       v.Price,
			Qty:         line.Qty,
		})
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:                strconv.FormatInt(now.UnixMilli(), 10),
		Date:              now,
		Items:             items,
		Subtotal:          quote.Subtotal,
		GST:               quote.GST,
		DeliveryCharge:    quote.Delivery,
		Discount:          quote.Discount,
		Total:             quote.Total,
		Customer:          customer,
		PaymentMethod:     method,
		Status:            domain.InitialStatus(method),
		PaymentScreenshot: screenshot,
	}

	// newest first
	s.orders = append([]domain.Order{order}, s.orders...)
	s.persist(domain.ColOrders, s.orders)

	if quote.Coupon != nil {
		for i := range s.coupons {
			if s.coupons[i].ID == quote.Coupon.ID {
				s.coupons[i].UsedCount++
				break
			}
		}
		s.persist(domain.ColCoupons, s.coupons)
	}

	s.cart = []domain.CartItem{}
	s.persist(domain.ColCart, s.cart)

	return order, nil
}

func (s *Store) resolveLineLocked(line domain.CartItem) (domain.Product, domain.Variant, bool) {
	for _, p := range s.products {
		if p.ID != line.ProductID {
			continue
		}
		v, ok := p.Variant(line.VariantID)
		return p, v, ok
	}
	return domain.Product{}, domain.Variant{}, false
}

// UpdateOrderStatus sets the order to any status. Operator transitions are
// deliberately unconstrained.
func (s *Store) UpdateOrderStatus(id string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.persist(domain.ColOrders, s.orders)
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

// DeleteOrderScreenshot removes the payment proof and force-transitions the
// order back to PENDING regardless of its current status: verification is
// revoked along with its evidence.
func (s *Store) DeleteOrderScreenshot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].PaymentScreenshot = ""
			s.orders[i].Status = domain.StatusPending
			s.persist(domain.ColOrders, s.orders)
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

// LookupOrder is the customer-facing order search keyed by the
// (orderId, mobile) pair.
func (s *Store) LookupOrder(id, mobile string) (domain.Order, bool) {
	id = strings.TrimSpace(id)
	mobile = strings.TrimSpace(mobile)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id && strings.TrimSpace(o.Customer.Mobile) == mobile {
			return o, true
		}
	}
	return domain.Order{}, false
}
