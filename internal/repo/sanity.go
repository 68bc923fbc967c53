package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taha12-ok/comforty-order-service/internal/entities"
)

// SanityAPI is the slice of the CMS client the repositories need.
type SanityAPI interface {
	Query(ctx context.Context, groq string, params map[string]string) (json.RawMessage, error)
	Create(ctx context.Context, doc any) (string, error)
}

const orderByIDQuery = `*[_type == "order" && orderId == $orderId][0]{
  orderId,
  customer { name, email, phone, address, city, country, postalCode, paymentMethod },
  items[] { productId, title, quantity, price },
  total,
  status,
  createdAt
}`

const productsQuery = `*[_type == "product"]{
  _id,
  title,
  price,
  badge,
  "imageUrl": image.asset->url,
  inventory,
  priceWithoutDiscount
}`

type sanityRepo struct {
	client SanityAPI
}

func NewSanityRepo(client SanityAPI) *sanityRepo {
	return &sanityRepo{client: client}
}

// SaveOrder writes the order document and returns the CMS document id.
// The dataset has no uniqueness constraint on orderId, so calling this twice
// for the same order produces two documents.
func (r *sanityRepo) SaveOrder(ctx context.Context, order entities.Order) (string, error) {
	docID, err := r.client.Create(ctx, OrderEntityToDoc(order))
	if err != nil {
		return "", fmt.Errorf("failed to create order document: %w", err)
	}
	return docID, nil
}

func (r *sanityRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	result, err := r.client.Query(ctx, orderByIDQuery, map[string]string{"orderId": orderID})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to query order: %w", err)
	}
	if len(result) == 0 || string(result) == "null" {
		return entities.Order{}, entities.ErrOrderNotFound
	}

	var doc Order
	if err := json.Unmarshal(result, &doc); err != nil {
		return entities.Order{}, fmt.Errorf("failed to decode order document: %w", err)
	}
	return OrderDocToEntity(doc), nil
}

func (r *sanityRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	result, err := r.client.Query(ctx, productsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	var docs []Product
	if len(result) > 0 && string(result) != "null" {
		if err := json.Unmarshal(result, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode product documents: %w", err)
		}
	}

	products := make([]entities.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, ProductDocToEntity(doc))
	}
	return products, nil
}
