package domain

// StoreSettings is a singleton collection: one record per store.
type StoreSettings struct {
	GSTPercent            float64 `json:"gstPercent"`
	DeliveryCharge        float64 `json:"deliveryCharge"`
	FreeDeliveryThreshold float64 `json:"freeDeliveryThreshold"`
	MerchantVPA           string  `json:"merchantVpa"`
	MerchantName          string  `json:"merchantName"`
	AdminUsername         string  `json:"adminUsername"`
	AdminPassword         string  `json:"adminPasswordHash"`
	AllowCOD              bool    `json:"allowCod"`
}

// DefaultSettings seeds a fresh store before the first remote pull.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		GSTPercent:            5,
		DeliveryCharge:        40,
		FreeDeliveryThreshold: 500,
		MerchantVPA:           "ahaamasala@upi",
		MerchantName:          "Ahaa! Masala",
		AdminUsername:         "admin",
		AdminPassword:         "admin123",
		AllowCOD:              true,
	}
}

// DefaultCoupons seeds the starter coupon for a fresh store.
func DefaultCoupons() []Coupon {
	return []Coupon{
		{ID: "c1", Code: "WELCOME50", Type: CouponFixed, Value: 50, MaxUses: 100, UsedCount: 0, Active: true, IsOneTime: false},
	}
}
