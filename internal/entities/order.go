package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidItem          = errors.New("invalid order item")
	ErrTotalMismatch        = errors.New("submitted total does not match sum of line totals")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

type OrderItem struct {
	ProductID string
	Title     string
	Quantity  int
	Price     decimal.Decimal
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	OrderID   string
	Customer  Customer
	Items     []OrderItem
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}

// NewOrder builds a pending order from checkout input. The submitted total is
// checked against the sum of line totals rather than trusted, so an order with
// an inconsistent total can never be constructed.
func NewOrder(customer Customer, items []OrderItem, submittedTotal decimal.Decimal) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if !customer.PaymentMethod.Valid() {
		return Order{}, ErrInvalidPaymentMethod
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 || item.Price.IsNegative() {
			return Order{}, ErrInvalidItem
		}
		total = total.Add(item.LineTotal())
	}
	if !total.Equal(submittedTotal) {
		return Order{}, ErrTotalMismatch
	}

	return Order{
		OrderID:   uuid.NewString(),
		Customer:  customer,
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
