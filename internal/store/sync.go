package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

// Run refines the cache-seeded state: one concurrent pull of every
// collection, then a recurring pull of the collections other sessions are
// likely to change. Returns when ctx is cancelled; no timer survives it.
func (s *Store) Run(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, name := range domain.PolledCollections() {
				s.reconcile(ctx, name)
			}
		}
	}
}

// Refresh pulls every collection once, concurrently.
func (s *Store) Refresh(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range domain.KnownCollections() {
		g.Go(func() error {
			s.reconcile(gctx, name)
			return nil
		})
	}
	_ = g.Wait()
}

// reconcile pulls one collection and applies the merge policy. A failed
// pull keeps the last known local value.
func (s *Store) reconcile(ctx context.Context, name string) {
	raw, ok := s.remote.Pull(ctx, name)
	if !ok {
		return
	}
	s.adoptRemote(name, raw)
}

// adoptRemote applies the remote value to in-memory state and the cache.
// For the product catalog an empty remote against non-empty local state is
// treated as a freshly reset authority: the local copy is pushed back out
// instead of adopted, so a backend wipe can never erase a live catalog.
// Everything else is adopt-if-different, judged by canonical JSON.
func (s *Store) adoptRemote(name string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case domain.ColProducts:
		var remote []domain.Product
		if err := json.Unmarshal(raw, &remote); err != nil {
			s.log.Warn("remote payload unreadable", slog.String("name", name), slog.Any("err", err))
			return
		}
		if len(remote) == 0 && len(s.products) > 0 {
			s.log.Info("remote catalog empty, restoring from local", slog.Int("products", len(s.products)))
			if data, err := json.Marshal(s.products); err == nil {
				go s.remote.Push(context.Background(), name, data)
			}
			return
		}
		adopt(s, name, remote, &s.products)
	case domain.ColOrders:
		decodeAndAdopt(s, name, raw, &s.orders)
	case domain.ColBanners:
		decodeAndAdopt(s, name, raw, &s.banners)
	case domain.ColCoupons:
		decodeAndAdopt(s, name, raw, &s.coupons)
	case domain.ColCart:
		decodeAndAdopt(s, name, raw, &s.cart)
	case domain.ColSettings:
		var remote domain.StoreSettings
		if err := json.Unmarshal(raw, &remote); err != nil {
			s.log.Warn("remote payload unreadable", slog.String("name", name), slog.Any("err", err))
			return
		}
		if valueEqual(s.settings, remote) {
			return
		}
		s.settings = remote
		s.writeCache(name, remote)
	}
}

func decodeAndAdopt[T any](s *Store, name string, raw []byte, dst *[]T) {
	var remote []T
	if err := json.Unmarshal(raw, &remote); err != nil {
		s.log.Warn("remote payload unreadable", slog.String("name", name), slog.Any("err", err))
		return
	}
	adopt(s, name, remote, dst)
}

func adopt[T any](s *Store, name string, remote []T, dst *[]T) {
	if remote == nil {
		remote = []T{}
	}
	if valueEqual(*dst, remote) {
		return
	}
	*dst = remote
	s.writeCache(name, remote)
}

// ApplyExternal republishes a cache entry mutated by another execution
// context on this device. No merge policy: the other context is trusted.
// Malformed payloads fall back to the collection's empty or default value.
func (s *Store) ApplyExternal(name string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case domain.ColProducts:
		s.products = decodeOr(raw, []domain.Product{})
	case domain.ColOrders:
		s.orders = decodeOr(raw, []domain.Order{})
	case domain.ColBanners:
		s.banners = decodeOr(raw, []domain.Banner{})
	case domain.ColCoupons:
		s.coupons = decodeOr(raw, []domain.Coupon{})
	case domain.ColCart:
		s.cart = decodeOr(raw, []domain.CartItem{})
	case domain.ColSettings:
		s.settings = decodeOr(raw, domain.DefaultSettings())
	}
}

func decodeOr[T any](raw []byte, def T) T {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}
