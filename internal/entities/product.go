package entities

import "github.com/shopspring/decimal"

// Product is a catalog item as stored in the CMS.
type Product struct {
	ID                   string
	Title                string
	Price                decimal.Decimal
	Badge                string
	ImageURL             string
	Inventory            int
	PriceWithoutDiscount decimal.Decimal
}
