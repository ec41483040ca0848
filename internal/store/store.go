// Package store owns the in-memory representation of every collection and
// is the single point of mutation. Each mutating action computes the new
// collection value, updates memory, writes through to the local cache and
// pushes to the remote authority without awaiting it, so user actions stay
// instantaneous even when the authority is unreachable.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

const defaultPollEvery = 5 * time.Second

type Options struct {
	// PollEvery is the interval between remote refreshes of the
	// collections other sessions are likely to change.
	PollEvery time.Duration
}

type Store struct {
	log       *slog.Logger
	cache     Cache
	remote    Remote
	pollEvery time.Duration

	mu       sync.RWMutex
	products []domain.Product
	banners  []domain.Banner
	coupons  []domain.Coupon
	orders   []domain.Order
	cart     []domain.CartItem
	settings domain.StoreSettings
	language domain.Language
	isAdmin  bool
}

// New seeds in-memory state synchronously from the cache so the first read
// never shows an empty store; the remote refines it afterwards via Run.
func New(cache Cache, remote Remote, log *slog.Logger, opts Options) *Store {
	s := &Store{
		log:       log,
		cache:     cache,
		remote:    remote,
		pollEvery: opts.PollEvery,
	}
	if s.pollEvery <= 0 {
		s.pollEvery = defaultPollEvery
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	s.products = loadCached(s.cache, domain.ColProducts, []domain.Product{})
	s.banners = loadCached(s.cache, domain.ColBanners, []domain.Banner{})
	s.coupons = loadCached(s.cache, domain.ColCoupons, domain.DefaultCoupons())
	s.orders = loadCached(s.cache, domain.ColOrders, []domain.Order{})
	s.cart = loadCached(s.cache, domain.ColCart, []domain.CartItem{})
	s.settings = loadCached(s.cache, domain.ColSettings, domain.DefaultSettings())
	s.language = domain.LanguageEN
	if raw, ok := s.cache.Get(domain.KeyAdminSession); ok && string(raw) == "true" {
		s.isAdmin = true
	}
}

func loadCached[T any](c Cache, name string, def T) T {
	raw, ok := c.Get(name)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// persist is the shared tail of every mutation: write-through to the cache
// and an unawaited push to the remote. Callers hold the write lock.
func (s *Store) persist(name string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal collection", slog.String("name", name), slog.Any("err", err))
		return
	}
	s.cache.Set(name, raw)
	go s.remote.Push(context.Background(), name, raw)
}

// writeCache updates only the local mirror, used when adopting a value
// that originated remotely.
func (s *Store) writeCache(name string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal collection", slog.String("name", name), slog.Any("err", err))
		return
	}
	s.cache.Set(name, raw)
}

// valueEqual compares by canonical JSON, mirroring how the remote stores
// the value, so re-adopting an unchanged pull is a no-op.
func valueEqual(a, b any) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ra) == string(rb)
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) Banners() []domain.Banner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.banners)
}

func (s *Store) Coupons() []domain.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.coupons)
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cart)
}

func (s *Store) Settings() domain.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) Language() domain.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}
