package store

import (
	"encoding/json"
	"fmt"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

// AddToCart merges qty into an existing (productId, variantId) line or
// appends a new one. Non-positive quantities are a no-op.
func (s *Store) AddToCart(productID, variantID string, qty int) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID && s.cart[i].VariantID == variantID {
			s.cart[i].Qty += qty
			s.persist(domain.ColCart, s.cart)
			return
		}
	}
	s.cart = append(s.cart, domain.CartItem{ProductID: productID, VariantID: variantID, Qty: qty})
	s.persist(domain.ColCart, s.cart)
}

func (s *Store) RemoveFromCart(productID, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromCartLocked(productID, variantID)
}

func (s *Store) removeFromCartLocked(productID, variantID string) {
	kept := make([]domain.CartItem, 0, len(s.cart))
	for _, line := range s.cart {
		if line.ProductID == productID && line.VariantID == variantID {
			continue
		}
		kept = append(kept, line)
	}
	s.cart = kept
	s.persist(domain.ColCart, s.cart)
}

// UpdateCartQty sets the quantity of an existing line; qty <= 0 removes it.
func (s *Store) UpdateCartQty(productID, variantID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		s.removeFromCartLocked(productID, variantID)
		return
	}
	for i := range s.cart {
		if s.cart[i].ProductID == productID && s.cart[i].VariantID == variantID {
			s.cart[i].Qty = qty
			s.persist(domain.ColCart, s.cart)
			return
		}
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = []domain.CartItem{}
	s.persist(domain.ColCart, s.cart)
}

// ToggleLanguage flips between EN and TE. Session-local, never synced.
func (s *Store) ToggleLanguage() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.language == domain.LanguageEN {
		s.language = domain.LanguageTE
	} else {
		s.language = domain.LanguageEN
	}
	return s.language
}

// Login compares against the settings credential pair and persists the
// admin flag as a plain boolean. No token, no expiry.
func (s *Store) Login(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if username != s.settings.AdminUsername || password != s.settings.AdminPassword {
		return false
	}
	s.isAdmin = true
	s.cache.Set(domain.KeyAdminSession, []byte("true"))
	return true
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = false
	s.cache.Delete(domain.KeyAdminSession)
}

func (s *Store) AddProduct(draft domain.ProductDraft) (domain.Product, error) {
	p, err := draft.Build()
	if err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	s.persist(domain.ColProducts, s.products)
	return p, nil
}

func (s *Store) UpdateProduct(draft domain.ProductDraft) (domain.Product, error) {
	if draft.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	p, err := draft.Build()
	if err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			s.persist(domain.ColProducts, s.products)
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
}

func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.persist(domain.ColProducts, s.products)
}

func (s *Store) UpdateSettings(cfg domain.StoreSettings) error {
	if cfg.GSTPercent < 0 || cfg.DeliveryCharge < 0 || cfg.FreeDeliveryThreshold < 0 {
		return fmt.Errorf("%w: charges must be non-negative", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cfg
	s.persist(domain.ColSettings, s.settings)
	return nil
}

func (s *Store) AddCoupon(draft domain.CouponDraft) (domain.Coupon, error) {
	c, err := draft.Build()
	if err != nil {
		return domain.Coupon{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons = append(s.coupons, c)
	s.persist(domain.ColCoupons, s.coupons)
	return c, nil
}

func (s *Store) ToggleCoupon(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.coupons {
		if s.coupons[i].ID == id {
			s.coupons[i].Active = !s.coupons[i].Active
		}
	}
	s.persist(domain.ColCoupons, s.coupons)
}

func (s *Store) AddBanner(draft domain.BannerDraft) (domain.Banner, error) {
	b, err := draft.Build()
	if err != nil {
		return domain.Banner{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banners = append(s.banners, b)
	s.persist(domain.ColBanners, s.banners)
	return b, nil
}

func (s *Store) DeleteBanner(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Banner, 0, len(s.banners))
	for _, b := range s.banners {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.banners = kept
	s.persist(domain.ColBanners, s.banners)
}

func (s *Store) ToggleBanner(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.banners {
		if s.banners[i].ID == id {
			s.banners[i].Active = !s.banners[i].Active
		}
	}
	s.persist(domain.ColBanners, s.banners)
}

// SaveCustomerDetails remembers checkout details for next time. Device
// local only; never part of the synced collection set.
func (s *Store) SaveCustomerDetails(d domain.UserDetails) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	s.cache.Set(domain.KeyCustomerDetails, raw)
}

func (s *Store) CustomerDetails() (domain.UserDetails, bool) {
	raw, ok := s.cache.Get(domain.KeyCustomerDetails)
	if !ok {
		return domain.UserDetails{}, false
	}
	var d domain.UserDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.UserDetails{}, false
	}
	return d, true
}
