package domain

// CartItem is one line of the customer cart. At most one line exists per
// (productId, variantId) pair; adds merge into the existing line.
type CartItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Qty       int    `json:"qty"`
}
