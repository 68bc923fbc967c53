package entities

// PaymentMethod is the customer's chosen way to pay. Payment itself is
// handled outside this service, the value is only recorded on the order.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

// Customer holds the checkout form data. Immutable once an order is built.
type Customer struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	City          string
	Country       string
	PostalCode    string
	PaymentMethod PaymentMethod
}
