package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending         OrderStatus = "PENDING"
	StatusPaymentUploaded OrderStatus = "PAYMENT_UPLOADED"
	StatusConfirmed       OrderStatus = "CONFIRMED"
	StatusDelivered       OrderStatus = "DELIVERED"
	StatusCancelled       OrderStatus = "CANCELLED"
)

func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusPaymentUploaded, StatusConfirmed, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, s)
}

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "COD"
	PaymentUPI PaymentMethod = "UPI"
)

// InitialStatus is chosen at creation: COD orders start PENDING, UPI orders
// start PAYMENT_UPLOADED (the screenshot is mandatory for UPI).
func InitialStatus(m PaymentMethod) OrderStatus {
	if m == PaymentUPI {
		return StatusPaymentUploaded
	}
	return StatusPending
}

// OrderItem is a denormalized snapshot of a cart line at placement time,
// independent of later product edits.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Variant     string  `json:"variant"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
}

// Order is immutable once created, except for Status and the
// payment-proof reference.
type Order struct {
	ID                string        `json:"id"`
	Date              time.Time     `json:"date"`
	Items             []OrderItem   `json:"items"`
	Subtotal          float64       `json:"subtotal"`
	GST               float64       `json:"gst"`
	DeliveryCharge    float64       `json:"deliveryCharge"`
	Discount          float64       `json:"discount"`
	Total             float64       `json:"total"`
	Customer          UserDetails   `json:"customer"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	Status            OrderStatus   `json:"status"`
	PaymentScreenshot string        `json:"paymentScreenshot,omitempty"`
}
