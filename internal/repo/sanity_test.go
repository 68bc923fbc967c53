package repo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taha12-ok/comforty-order-service/internal/config"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/taha12-ok/comforty-order-service/internal/repo"
	"github.com/taha12-ok/comforty-order-service/internal/sanity"
)

type orderRepo interface {
	SaveOrder(ctx context.Context, order entities.Order) (string, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

func newRepo(t *testing.T, handler http.HandlerFunc) orderRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := sanity.New(config.Sanity{
		ProjectID:  "test",
		Dataset:    "production",
		APIVersion: "2024-02-02",
		Token:      "token",
		Timeout:    5 * time.Second,
	}).WithBaseURL(srv.URL)

	return repo.NewSanityRepo(client)
}

func testOrder() entities.Order {
	return entities.Order{
		OrderID: "abc-123",
		Customer: entities.Customer{
			Name: "John Doe", Email: "john@example.com", Phone: "+12025550123",
			Address: "1 Main St", City: "Springfield", Country: "USA",
			PostalCode: "12345", PaymentMethod: entities.PaymentCreditCard,
		},
		Items: []entities.OrderItem{
			{ProductID: "prod-1", Title: "Chair", Quantity: 2, Price: decimal.RequireFromString("49.99")},
		},
		Total:     decimal.RequireFromString("99.98"),
		Status:    entities.StatusPending,
		CreatedAt: time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestSanityRepo_SaveOrder(t *testing.T) {
	t.Run("persists the full document shape", func(t *testing.T) {
		r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Mutations []struct {
					Create repo.Order `json:"create"`
				} `json:"mutations"`
			}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Len(t, body.Mutations, 1)

			doc := body.Mutations[0].Create
			assert.Equal(t, "order", doc.Type)
			assert.Equal(t, "abc-123", doc.OrderID)
			assert.Equal(t, "credit_card", doc.Customer.PaymentMethod)
			assert.Equal(t, "pending", doc.Status)
			assert.Equal(t, "2026-02-02T12:00:00Z", doc.CreatedAt)
			require.Len(t, doc.Items, 1)
			assert.Equal(t, "orderItem", doc.Items[0].Type)
			assert.InDelta(t, 49.99, doc.Items[0].Price, 0.0001)
			assert.InDelta(t, 99.98, doc.Total, 0.0001)

			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]string{{"id": "doc-1", "operation": "create"}},
			})
		})

		docID, err := r.SaveOrder(context.Background(), testOrder())
		require.NoError(t, err)
		assert.Equal(t, "doc-1", docID)
	})

	t.Run("duplicate saves create two documents", func(t *testing.T) {
		var creates atomic.Int32
		r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
			n := creates.Add(1)
			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{{"id": "doc-" + string(rune('0'+n)), "operation": "create"}},
			})
		})

		order := testOrder()
		first, err := r.SaveOrder(context.Background(), order)
		require.NoError(t, err)
		second, err := r.SaveOrder(context.Background(), order)
		require.NoError(t, err)

		assert.Equal(t, int32(2), creates.Load())
		assert.NotEqual(t, first, second)
	})

	t.Run("auth failure propagates", func(t *testing.T) {
		r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "bad token", http.StatusForbidden)
		})

		_, err := r.SaveOrder(context.Background(), testOrder())
		assert.ErrorIs(t, err, sanity.ErrUnauthorized)
	})
}

func TestSanityRepo_GetOrderByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, `"abc-123"`, req.URL.Query().Get("$orderId"))
			json.NewEncoder(w).Encode(map[string]any{
				"result": repo.OrderEntityToDoc(testOrder()),
			})
		})

		order, err := r.GetOrderByID(context.Background(), "abc-123")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", order.OrderID)
		assert.Equal(t, entities.StatusPending, order.Status)
		require.Len(t, order.Items, 1)
		assert.True(t, order.Total.Equal(decimal.RequireFromString("99.98")))
	})

	t.Run("miss maps to ErrOrderNotFound", func(t *testing.T) {
		r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"result": nil})
		})

		_, err := r.GetOrderByID(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestSanityRepo_ListProducts(t *testing.T) {
	r := newRepo(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Contains(t, req.URL.Query().Get("query"), `_type == "product"`)
		json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"_id": "p1", "title": "Library Stool Chair", "price": 20, "badge": "New", "inventory": 5},
				{"_id": "p2", "title": "Sofa", "price": 120.5, "priceWithoutDiscount": 150},
			},
		})
	})

	products, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Library Stool Chair", products[0].Title)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("120.5")))
}
