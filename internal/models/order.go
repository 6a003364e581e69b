package models

import "time"

// Order states the payment flow moves an order through.
const (
	OrderStatePending       = "pending"
	OrderStatePaid          = "paid"
	OrderStatePreauthorized = "preauthorized"
	OrderStateRefunded      = "refunded"
)

// Order is the host platform's view of a checkout: the cart it came from,
// what was paid, and where it sits in the payment lifecycle.
type Order struct {
	ID        uint    `gorm:"primarykey"`
	CartID    uint    `gorm:"not null;index"`
	TotalPaid float64 `gorm:"not null"`
	Currency  string  `gorm:"default:'USD'"`
	State     string  `gorm:"not null;default:'pending'"`
	Email     string

	Payments []OrderPayment
	Messages []OrderMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderPayment records one gateway interaction against an order. The
// TransactionID is the gateway token used later for refunds and captures.
type OrderPayment struct {
	ID            uint   `gorm:"primarykey"`
	OrderID       uint   `gorm:"not null;index"`
	TransactionID string // empty for attempts that never got a token
	Amount        float64
	Method        string
	CreatedAt     time.Time
}

// OrderMessage is a private note attached to an order, mirroring what the
// back office shows next to a refund or capture.
type OrderMessage struct {
	ID        uint `gorm:"primarykey"`
	OrderID   uint `gorm:"not null;index"`
	Message   string
	Private   bool `gorm:"default:true"`
	CreatedAt time.Time
}
