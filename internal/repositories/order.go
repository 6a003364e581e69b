package repositories

import (
	"context"
	"errors"
	"fmt"

	"trexle/internal/models"
	"trexle/internal/services/checkout"

	"gorm.io/gorm"
)

// OrderRepository persists orders and their payment trail. It backs the
// checkout service's view of the order state machine.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FetchOrderContext loads the slice of an order the payment flow needs.
// The transaction id is taken from the most recent payment that carries
// one, so a capture or refund always targets the latest gateway token.
func (r *OrderRepository) FetchOrderContext(ctx context.Context, orderID uint) (checkout.OrderContext, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checkout.OrderContext{}, checkout.ErrOrderNotFound
		}
		return checkout.OrderContext{}, err
	}

	octx := checkout.OrderContext{
		CartID:   order.CartID,
		Amount:   order.TotalPaid,
		Currency: order.Currency,
		State:    order.State,
		Email:    order.Email,
	}
	for _, p := range order.Payments {
		if p.TransactionID != "" {
			octx.TransactionID = p.TransactionID
			break
		}
	}
	return octx, nil
}

// ApplyResult records a payment outcome against the order in one
// transaction: a private message for the back office, a payment row when
// the gateway issued a transaction id, and the new order state when one
// is given. Returns the order's state after the update.
func (r *OrderRepository) ApplyResult(ctx context.Context, orderID uint, state, message, transactionID string) (string, error) {
	var finalState string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return checkout.ErrOrderNotFound
			}
			return err
		}

		if message != "" {
			msg := models.OrderMessage{OrderID: orderID, Message: message, Private: true}
			if err := tx.Create(&msg).Error; err != nil {
				return fmt.Errorf("recording order message: %w", err)
			}
		}

		if transactionID != "" {
			payment := models.OrderPayment{
				OrderID:       orderID,
				TransactionID: transactionID,
				Amount:        order.TotalPaid,
				Method:        "Trexle",
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("recording order payment: %w", err)
			}
		}

		if state != "" && state != order.State {
			if err := tx.Model(&order).Update("state", state).Error; err != nil {
				return fmt.Errorf("updating order state: %w", err)
			}
			order.State = state
		}

		finalState = order.State
		return nil
	})
	if err != nil {
		return "", err
	}
	return finalState, nil
}
