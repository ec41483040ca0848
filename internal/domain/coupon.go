package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CouponType string

const (
	CouponPercentage CouponType = "PERCENTAGE"
	CouponFixed      CouponType = "FIXED"
)

// Coupon tracks usage but does not enforce maxUses or isOneTime as hard
// gates; only usedCount moves, and it is never decremented.
type Coupon struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      CouponType `json:"type"`
	Value     float64    `json:"value"`
	MaxUses   int        `json:"maxUses"`
	UsedCount int        `json:"usedCount"`
	Active    bool       `json:"active"`
	IsOneTime bool       `json:"isOneTime"`
}

// NormalizeCode upper-cases and trims a coupon code. Normalization happens
// at creation; lookup compares codes case-sensitively.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Matches reports whether the coupon is redeemable against the given code.
func (c Coupon) Matches(code string) bool {
	return c.Active && c.Code == code
}

type CouponDraft struct {
	Code      string
	Type      CouponType
	Value     float64
	MaxUses   int
	IsOneTime bool
}

func (d CouponDraft) Build() (Coupon, error) {
	code := NormalizeCode(d.Code)
	if code == "" {
		return Coupon{}, fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}
	if d.Type != CouponPercentage && d.Type != CouponFixed {
		return Coupon{}, fmt.Errorf("%w: unknown coupon type %q", ErrInvalidInput, d.Type)
	}
	if d.Value < 0 {
		return Coupon{}, fmt.Errorf("%w: coupon value must be non-negative", ErrInvalidInput)
	}
	if d.MaxUses < 0 {
		return Coupon{}, fmt.Errorf("%w: maxUses must be non-negative", ErrInvalidInput)
	}
	return Coupon{
		ID:        uuid.NewString(),
		Code:      code,
		Type:      d.Type,
		Value:     d.Value,
		MaxUses:   d.MaxUses,
		Active:    true,
		IsOneTime: d.IsOneTime,
	}, nil
}
