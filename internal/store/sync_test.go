package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/masala-store/internal/domain"
	"github.com/dwikikusuma/masala-store/internal/store"
)

func TestRefreshAdoptsRemoteChanges(t *testing.T) {
	st, cache, remote := newTestStore(t)

	products := []domain.Product{
		{ID: "p1", Name: "Chilli", Variants: []domain.Variant{{ID: "v1", Weight: "50g", Price: 30}}, Active: true},
	}
	remote.serve(domain.ColProducts, products)

	st.Refresh(context.Background())

	assert.Equal(t, products, st.Products())
	raw, ok := cache.Get(domain.ColProducts)
	require.True(t, ok)
	var cached []domain.Product
	require.NoError(t, json.Unmarshal(raw, &cached))
	assert.Equal(t, products, cached)
}

func TestRefreshIsIdempotent(t *testing.T) {
	st, cache, remote := newTestStore(t)

	remote.serve(domain.ColProducts, []domain.Product{
		{ID: "p1", Name: "Chilli", Variants: []domain.Variant{{ID: "v1", Price: 30}}, Active: true},
	})

	st.Refresh(context.Background())
	first := cache.setCount(domain.ColProducts)
	require.Equal(t, 1, first)

	// unchanged remote: value-equal, so no further mutation
	st.Refresh(context.Background())
	st.Refresh(context.Background())
	assert.Equal(t, first, cache.setCount(domain.ColProducts))
}

func TestAntiEraseProtectsCatalog(t *testing.T) {
	st, cache, remote := newTestStore(t)
	p := seedCatalog(t, st)
	localSets := cache.setCount(domain.ColProducts)

	// a freshly reset authority answers with an empty catalog
	remote.serve(domain.ColProducts, []domain.Product{})

	st.Refresh(context.Background())

	// local survives, and is pushed back out to self-heal the remote
	require.Len(t, st.Products(), 1)
	assert.Equal(t, p.ID, st.Products()[0].ID)
	assert.Equal(t, localSets, cache.setCount(domain.ColProducts))

	require.Eventually(t, func() bool {
		return remote.pushCount(domain.ColProducts) >= 2 // AddProduct push + restore push
	}, 2*time.Second, 10*time.Millisecond)

	var restored []domain.Product
	require.NoError(t, json.Unmarshal(remote.lastPush(domain.ColProducts), &restored))
	require.Len(t, restored, 1)
	assert.Equal(t, p.ID, restored[0].ID)
}

func TestEmptyRemoteAdoptedForOtherCollections(t *testing.T) {
	// the anti-erase rule is deliberately scoped to the catalog; an
	// empty remote order list wins over local state
	st, _, remote := newTestStore(t)
	p := seedCatalog(t, st)
	st.AddToCart(p.ID, "v-100g", 1)
	_, err := st.PlaceOrder(testCustomer(), domain.PaymentCOD, "", "")
	require.NoError(t, err)
	require.Len(t, st.Orders(), 1)

	remote.serve(domain.ColOrders, []domain.Order{})

	st.Refresh(context.Background())

	assert.Empty(t, st.Orders())
}

func TestRefreshAdoptsSettings(t *testing.T) {
	st, _, remote := newTestStore(t)

	changed := domain.DefaultSettings()
	changed.DeliveryCharge = 75
	remote.serve(domain.ColSettings, changed)

	st.Refresh(context.Background())

	assert.Equal(t, 75.0, st.Settings().DeliveryCharge)
}

func TestRefreshIgnoresMalformedRemote(t *testing.T) {
	st, _, remote := newTestStore(t)
	p := seedCatalog(t, st)

	remote.values[domain.ColProducts] = json.RawMessage(`{"not":"a list"}`)

	st.Refresh(context.Background())

	require.Len(t, st.Products(), 1)
	assert.Equal(t, p.ID, st.Products()[0].ID)
}

func TestRunPollsUntilCancelled(t *testing.T) {
	cache := newFakeCache()
	remote := newFakeRemote()
	st := store.New(cache, remote, discardLogger(), store.Options{PollEvery: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx)
		close(done)
	}()

	products := []domain.Product{
		{ID: "p1", Name: "Pepper", Variants: []domain.Variant{{ID: "v1", Price: 90}}, Active: true},
	}
	remote.serve(domain.ColProducts, products)

	require.Eventually(t, func() bool {
		return len(st.Products()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestApplyExternal(t *testing.T) {
	st, _, _ := newTestStore(t)
	seedCatalog(t, st)

	t.Run("republishes another context's write", func(t *testing.T) {
		cart := []domain.CartItem{{ProductID: "p9", VariantID: "v9", Qty: 4}}
		raw, err := json.Marshal(cart)
		require.NoError(t, err)

		st.ApplyExternal(domain.ColCart, raw)

		assert.Equal(t, cart, st.Cart())
	})

	t.Run("no merge policy, even for products", func(t *testing.T) {
		st.ApplyExternal(domain.ColProducts, []byte(`[]`))
		assert.Empty(t, st.Products())
	})

	t.Run("malformed payload falls back to default", func(t *testing.T) {
		st.ApplyExternal(domain.ColSettings, []byte(`{broken`))
		assert.Equal(t, domain.DefaultSettings(), st.Settings())
	})

	t.Run("unknown collection ignored", func(t *testing.T) {
		st.ApplyExternal("mystery", []byte(`[1,2,3]`))
	})
}
