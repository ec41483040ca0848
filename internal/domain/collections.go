package domain

// Collection names. Each is persisted under its own name in the local
// cache and mirrored remotely under the same name.
const (
	ColProducts = "products"
	ColOrders   = "orders"
	ColBanners  = "banners"
	ColSettings = "settings"
	ColCoupons  = "coupons"
	ColCart     = "cart"
)

// Cache-only keys. These never leave the device.
const (
	KeyAdminSession    = "isAdmin"
	KeyCustomerDetails = "customer_details"
)

// KnownCollections lists every collection mirrored between the cache and
// the remote authority, in the order they are pulled on startup.
func KnownCollections() []string {
	return []string{ColProducts, ColBanners, ColSettings, ColOrders, ColCoupons, ColCart}
}

// PolledCollections lists the collections other sessions are likely to
// change, refreshed on every polling tick.
func PolledCollections() []string {
	return []string{ColOrders, ColProducts, ColSettings, ColBanners, ColCoupons}
}
