package handler

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
)

// CheckoutRequest is the submitted checkout form plus cart contents.
type CheckoutRequest struct {
	Customer CheckoutCustomer `json:"customer" validate:"required"`
	Items    []CheckoutItem   `json:"items" validate:"required,min=1,dive"`
	Total    float64          `json:"total" validate:"gte=0"`
}

type CheckoutCustomer struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	Country       string `json:"country" validate:"required"`
	PostalCode    string `json:"postalCode" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=credit_card paypal bank_transfer"`
}

type CheckoutItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CheckoutResponse reports the placed order. EmailSent is false when the
// order was stored but the confirmation mail could not be delivered.
type CheckoutResponse struct {
	Order     Order `json:"order"`
	EmailSent bool  `json:"emailSent"`
}

type Order struct {
	OrderID   string    `json:"orderId"`
	Customer  Customer  `json:"customer"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Customer struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PostalCode    string `json:"postalCode"`
	PaymentMethod string `json:"paymentMethod"`
}

type Item struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Product struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Price                float64 `json:"price"`
	Badge                string  `json:"badge,omitempty"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	Inventory            int     `json:"inventory"`
	PriceWithoutDiscount float64 `json:"priceWithoutDiscount,omitempty"`
}

func CustomerJSONToEntity(c CheckoutCustomer) entities.Customer {
	return entities.Customer{
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		Country:       c.Country,
		PostalCode:    c.PostalCode,
		PaymentMethod: entities.PaymentMethod(c.PaymentMethod),
	}
}

func ItemsJSONToEntity(items []CheckoutItem) []entities.OrderItem {
	result := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		result = append(result, entities.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     decimal.NewFromFloat(it.Price),
		})
	}
	return result
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, Item{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		})
	}

	return Order{
		OrderID: o.OrderID,
		Customer: Customer{
			Name:          o.Customer.Name,
			Email:         o.Customer.Email,
			Phone:         o.Customer.Phone,
			Address:       o.Customer.Address,
			City:          o.Customer.City,
			Country:       o.Customer.Country,
			PostalCode:    o.Customer.PostalCode,
			PaymentMethod: string(o.Customer.PaymentMethod),
		},
		Items:     items,
		Total:     o.Total.InexactFloat64(),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:                   p.ID,
		Title:                p.Title,
		Price:                p.Price.InexactFloat64(),
		Badge:                p.Badge,
		ImageURL:             p.ImageURL,
		Inventory:            p.Inventory,
		PriceWithoutDiscount: p.PriceWithoutDiscount.InexactFloat64(),
	}
}
