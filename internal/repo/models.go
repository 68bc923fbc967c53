package repo

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
)

// Wire models mirror the CMS documents exactly. Money crosses the wire as
// JSON numbers (the schema stores plain numbers), decimals stay in the domain.

type Order struct {
	Type      string      `json:"_type"`
	OrderID   string      `json:"orderId"`
	Customer  Customer    `json:"customer"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"createdAt"`
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

type OrderItem struct {
	Type      string  `json:"_type,omitempty"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Product struct {
	ID                   string  `json:"_id"`
	Title                string  `json:"title"`
	Price                float64 `json:"price"`
	Badge                string  `json:"badge"`
	ImageURL             string  `json:"imageUrl"`
	Inventory            int     `json:"inventory"`
	PriceWithoutDiscount float64 `json:"priceWithoutDiscount"`
}

func OrderEntityToDoc(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			Type:      "orderItem",
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		})
	}

	return Order{
		Type:      "order",
		OrderID:   o.OrderID,
		Customer:  CustomerEntityToDoc(o.Customer),
		Items:     items,
		Total:     o.Total.InexactFloat64(),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func CustomerEntityToDoc(c entities.Customer) Customer {
	return Customer{
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		Country:       c.Country,
		PostalCode:    c.PostalCode,
		PaymentMethod: string(c.PaymentMethod),
	}
}

func OrderDocToEntity(o Order) entities.Order {
	items := make([]entities.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, entities.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     decimal.NewFromFloat(it.Price),
		})
	}

	createdAt, _ := time.Parse(time.RFC3339, o.CreatedAt)

	return entities.Order{
		OrderID: o.OrderID,
		Customer: entities.Customer{
			Name:          o.Customer.Name,
			Email:         o.Customer.Email,
			Phone:         o.Customer.Phone,
			Address:       o.Customer.Address,
			City:          o.Customer.City,
			Country:       o.Customer.Country,
			PostalCode:    o.Customer.PostalCode,
			PaymentMethod: entities.PaymentMethod(o.Customer.PaymentMethod),
		},
		Items:     items,
		Total:     decimal.NewFromFloat(o.Total),
		Status:    entities.OrderStatus(o.Status),
		CreatedAt: createdAt,
	}
}

func ProductDocToEntity(p Product) entities.Product {
	return entities.Product{
		ID:                   p.ID,
		Title:                p.Title,
		Price:                decimal.NewFromFloat(p.Price),
		Badge:                p.Badge,
		ImageURL:             p.ImageURL,
		Inventory:            p.Inventory,
		PriceWithoutDiscount: decimal.NewFromFloat(p.PriceWithoutDiscount),
	}
}
